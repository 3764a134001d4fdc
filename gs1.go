package shelfscan

import "regexp"

var gs1AIPattern = regexp.MustCompile(`\((\d{2,4})\)`)

// Fixed-length application identifiers handled by ParseGS1.
var gs1FixedLength = map[string]int{
	"01": 14, // GTIN
	"17": 6,  // expiry YYMMDD
	"15": 6,  // best before YYMMDD
}

// ParseGS1 parses a GS1 element string into AI -> value pairs, best effort.
// Parenthesized strings like "(01)00012345678905(10)AB12" are walked AI by
// AI; fixed-length AIs consume their defined length and variable-length AIs
// run until the next AI or end of string. For bare strings the common
// "01" + GTIN-14 layout is recognized, with an optional trailing "10" batch.
func ParseGS1(data string) map[string]string {
	result := map[string]string{}
	if data == "" {
		return result
	}

	pos := 0
	for {
		loc := gs1AIPattern.FindStringSubmatchIndex(data[pos:])
		if loc == nil {
			break
		}
		ai := data[pos+loc[2] : pos+loc[3]]
		start := pos + loc[1]
		if length, ok := gs1FixedLength[ai]; ok {
			end := start + length
			if end > len(data) {
				end = len(data)
			}
			result[ai] = data[start:end]
			pos = end
			continue
		}
		// Variable length: until the next (AI) or end.
		end := len(data)
		if next := gs1AIPattern.FindStringIndex(data[start:]); next != nil {
			end = start + next[0]
		}
		result[ai] = data[start:end]
		pos = end
	}

	if len(result) == 0 && len(data) >= 16 && data[:2] == "01" {
		result["01"] = data[2:16]
		if rest := data[16:]; len(rest) >= 2 && rest[:2] == "10" {
			result["10"] = rest[2:]
		}
	}

	return result
}

// ExtractGTIN returns the GTIN-14 carried in a GS1 element string, or ""
// when none is present.
func ExtractGTIN(data string) string {
	return ParseGS1(data)["01"]
}
