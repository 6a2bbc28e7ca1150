package report

// Suggestion is an entry of the suggested category and payment method
// lists. The lists are suggestions only, stored values are free-form
// strings and are not validated against them.
type Suggestion struct {
	ID   string `json:"id" example:"food-dining"`
	Name string `json:"name" example:"Food & Dining"`
}

// Categories returns the suggested transaction categories.
func Categories() []Suggestion {
	return []Suggestion{
		{ID: "food-dining", Name: "Food & Dining"},
		{ID: "transportation", Name: "Transportation"},
		{ID: "shopping", Name: "Shopping"},
		{ID: "housing", Name: "Housing"},
		{ID: "travel", Name: "Travel"},
		{ID: "entertainment", Name: "Entertainment"},
		{ID: "education", Name: "Education"},
		{ID: "healthcare", Name: "Healthcare"},
		{ID: "gifts", Name: "Gifts"},
		{ID: "tech", Name: "Tech"},
		{ID: "coffee-tea", Name: "Coffee & Tea"},
		{ID: "other", Name: "Other"},
	}
}

// PaymentMethods returns the suggested payment methods.
func PaymentMethods() []Suggestion {
	return []Suggestion{
		{ID: "cash", Name: "Cash"},
		{ID: "phonepe", Name: "PhonePe"},
		{ID: "paytm", Name: "Paytm"},
		{ID: "card", Name: "Debit/Credit Card"},
		{ID: "bank-transfer", Name: "Bank Transfer"},
		{ID: "other", Name: "Other"},
	}
}
