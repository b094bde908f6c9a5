package markets

// persianNames maps catalog names to the Persian display names used by
// reports.
var persianNames = map[string]string{
	"Sandoghe-Aiar": "عیار-مفید",
	"Bourse":        "بورس",
	"Fara-Bourse":   "فرابورس",
	"Gold":          "طلا",
	"Dollar":        "دلار",
	"Coin":          "سکه امامی",
	"Nim-Coin":      "نیم سکه",
	"Coin-Gerami":   "سکه گرمی",
	"Bitcoin":       "بیت کوین",
	"Rob-Coin":      "ربع سکه",
	"Bourse-Khodro": "بورس خودرو",
	"Khesapa":       "خساپا",
	"Khodro":        "خودرو",
	"Silver":        "نقره",
	"Salam":         "صندوق سلام",
	"Synergy":       "سینرژی",
	"Energy":        "انرژی",
}

// PersianName returns the Persian display name for a market, or "Unknown"
// when there is none.
func PersianName(name string) string {
	if persian, ok := persianNames[name]; ok {
		return persian
	}
	return "Unknown"
}
