// Package teams maps raw team identifiers to canonical team codes.
package teams

import (
	"strings"
)

// codeAliases maps upper-cased abbreviation variants to canonical
// codes. Covers relocated franchises and the alternate abbreviation
// conventions used by the common data providers.
var codeAliases = map[string]string{
	// Relocations and rebrands
	"OAK": "LV",
	"LVR": "LV",
	"SD":  "LAC",
	"SDG": "LAC",
	"STL": "LAR",
	"LA":  "LAR",
	"WSH": "WAS",
	"WFT": "WAS",

	// Provider-specific spellings
	"ARZ": "ARI",
	"BLT": "BAL",
	"CLV": "CLE",
	"GNB": "GB",
	"HST": "HOU",
	"JAC": "JAX",
	"KAN": "KC",
	"NWE": "NE",
	"NOR": "NO",
	"SFO": "SF",
	"TAM": "TB",
}

// fullNameAliases maps upper-cased full team names to canonical codes,
// used when a data source (like the odds feed) carries names instead
// of codes.
var fullNameAliases = map[string]string{
	"ARIZONA CARDINALS":     "ARI",
	"ATLANTA FALCONS":       "ATL",
	"BALTIMORE RAVENS":      "BAL",
	"BUFFALO BILLS":         "BUF",
	"CAROLINA PANTHERS":     "CAR",
	"CHICAGO BEARS":         "CHI",
	"CINCINNATI BENGALS":    "CIN",
	"CLEVELAND BROWNS":      "CLE",
	"DALLAS COWBOYS":        "DAL",
	"DENVER BRONCOS":        "DEN",
	"DETROIT LIONS":         "DET",
	"GREEN BAY PACKERS":     "GB",
	"HOUSTON TEXANS":        "HOU",
	"INDIANAPOLIS COLTS":    "IND",
	"JACKSONVILLE JAGUARS":  "JAX",
	"KANSAS CITY CHIEFS":    "KC",
	"LAS VEGAS RAIDERS":     "LV",
	"LOS ANGELES CHARGERS":  "LAC",
	"LOS ANGELES RAMS":      "LAR",
	"MIAMI DOLPHINS":        "MIA",
	"MINNESOTA VIKINGS":     "MIN",
	"NEW ENGLAND PATRIOTS":  "NE",
	"NEW ORLEANS SAINTS":    "NO",
	"NEW YORK GIANTS":       "NYG",
	"NEW YORK JETS":         "NYJ",
	"PHILADELPHIA EAGLES":   "PHI",
	"PITTSBURGH STEELERS":   "PIT",
	"SEATTLE SEAHAWKS":      "SEA",
	"SAN FRANCISCO 49ERS":   "SF",
	"TAMPA BAY BUCCANEERS":  "TB",
	"TENNESSEE TITANS":      "TEN",
	"WASHINGTON COMMANDERS": "WAS",

	// Pre-relocation / pre-rebrand names that still appear in
	// historical data sets.
	"OAKLAND RAIDERS":          "LV",
	"SAN DIEGO CHARGERS":       "LAC",
	"ST. LOUIS RAMS":           "LAR",
	"ST LOUIS RAMS":            "LAR",
	"WASHINGTON REDSKINS":      "WAS",
	"WASHINGTON FOOTBALL TEAM": "WAS",
}

// Canonicalize maps a raw team abbreviation to its canonical code. The
// input is trimmed and upper-cased; unknown values pass through in
// that normalized form, which makes the function idempotent.
func Canonicalize(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if canonical, ok := codeAliases[code]; ok {
		return canonical
	}
	return code
}

// NormalizeFullName maps a full team name ("Green Bay Packers") to the
// same canonical codes Canonicalize produces. Unrecognized names fall
// back to Canonicalize so already-canonical input survives untouched.
func NormalizeFullName(raw string) string {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if canonical, ok := fullNameAliases[name]; ok {
		return canonical
	}
	return Canonicalize(raw)
}
