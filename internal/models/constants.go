package models

// Response statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Caller-facing messages
const (
	MessageNoTransactions = "No valid transactions found."
	MessageNoHistory      = "No transaction history found."
)

// Categories
const (
	CategoryMiscellaneous = "Miscellaneous"
	CategoryHealthcare    = "Healthcare"
	CategoryMoneyTransfer = "Money Transfer"
	CategoryMoneyReceived = "Money Received"
)

// Profile defaults
const (
	DefaultJobTitle       = "Student"
	DefaultEducationLevel = "Bachelor's"
	DefaultLoanType       = "None"
	DefaultCreditScore    = 700
)

// SuggestionSeparator joins suggestions into the stored summary.
const SuggestionSeparator = " | "

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
