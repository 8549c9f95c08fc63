package domain

// BankAccount is a destination account for manual transfers.
type BankAccount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

const PaymentMethodBankTransferPrefix = "bank_transfer_"

var BankAccounts = []BankAccount{
	{ID: "mandiri", Name: "Bank Mandiri", AccountNumber: "1370-0123-4567-890", AccountName: "PT PakaryanHeavyRent"},
	{ID: "bca", Name: "Bank Central Asia (BCA)", AccountNumber: "5430-1234-567", AccountName: "PT PakaryanHeavyRent"},
	{ID: "bni", Name: "Bank Negara Indonesia (BNI)", AccountNumber: "0123-4567-890", AccountName: "PT PakaryanHeavyRent"},
}

func FindBankAccount(id string) (BankAccount, bool) {
	for _, b := range BankAccounts {
		if b.ID == id {
			return b, true
		}
	}
	return BankAccount{}, false
}
