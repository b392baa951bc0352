package trends

// ScamPattern is a named keyword group. Declaration order matters: both
// pattern ranking ties and within-pattern keyword precedence follow it.
type ScamPattern struct {
	Name     string
	Keywords []string
}

// ScamPatterns is the static catalog of known scam keyword groups.
var ScamPatterns = []ScamPattern{
	{"Work From Home Scam", []string{"work from home", "remote work", "work at home", "earn from home", "home based"}},
	{"Advance Fee Fraud", []string{"processing fee", "registration fee", "training fee", "pay to apply", "upfront payment", "send money", "wire transfer"}},
	{"Data Harvesting", []string{"ssn", "social security", "bank details", "credit card", "passport number", "personal information"}},
	{"Fake Urgency", []string{"limited spots", "act now", "immediately", "urgent hiring", "don't miss", "apply today only"}},
	{"Unrealistic Pay", []string{"$5000 weekly", "earn $", "guaranteed income", "unlimited earning", "high salary", "easy money"}},
	{"Crypto / Investment Scam", []string{"crypto", "bitcoin", "forex", "investment opportunity", "trading", "nft"}},
	{"Impersonation", []string{"google hiring", "amazon hiring", "microsoft hiring", "fake brand", "on behalf of"}},
	{"Contact Red Flags", []string{"whatsapp", "telegram", "personal email", "gmail.com", "yahoo.com"}},
}
