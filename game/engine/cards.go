package engine

var sharedCards = []Card{
	{Name: "Advance to Go", Description: "Advance to Go and collect your salary", Image: "advance_to_go.png", Effect: EffectAdvanceToGo},
	{Name: "Go to Jail", Description: "Go directly to Jail. Do not pass Go", Image: "go_to_jail.png", Effect: EffectGoToJail},
	{Name: "School Tax", Description: "Pay school tax into the center pot", Image: "school_tax.png", Effect: EffectSchoolTax},
	{Name: "Get Out of Jail Free", Description: "Keep this card until needed", Image: "get_out_free.png", Effect: EffectGetOutOfJailFree},
	{Name: "Bank Dividend", Description: "The bank pays you a dividend", Image: "bank_dividend.png", Effect: EffectBankDividend},
	{Name: "Doctor's Fee", Description: "Pay the doctor into the center pot", Image: "doctor_fee.png", Effect: EffectDoctorFee},
	{Name: "Go Back Three Spaces", Description: "Go back three spaces", Image: "go_back.png", Effect: EffectGoBackThree},
}

// ChanceCards returns a fresh copy of the Chance card set
func ChanceCards() []Card {
	cards := make([]Card, len(sharedCards))
	copy(cards, sharedCards)
	return cards
}

// CommunityChestCards returns a fresh copy of the Community Chest card set
func CommunityChestCards() []Card {
	cards := make([]Card, len(sharedCards))
	copy(cards, sharedCards)
	return cards
}
