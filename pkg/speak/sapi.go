package astispeak

import (
	"math"
	"strings"
)

// SAPI constants
const (
	sapiFlagsAsync           = 1
	sapiFlagsPurge           = 2
	sapiFormat22kHz16Mono    = 22
	sapiStreamCreateWrite    = 3
	sapiWaitTimeoutMillis    = 100
	sapiReferenceWPM         = 156.63
	sapiRateLogBase          = 1.11
	sapiMinRate, sapiMaxRate = -10, 10
)

// Windows LCIDs, as found in the Language attribute of voice tokens
var sapiLCIDs = map[string]string{
	"1009": "en-CA",
	"1409": "en-NZ",
	"1809": "en-IE",
	"4009": "en-IN",
	"407":  "de-DE",
	"409":  "en-US",
	"40a":  "es-ES",
	"40c":  "fr-FR",
	"410":  "it-IT",
	"411":  "ja-JP",
	"412":  "ko-KR",
	"416":  "pt-BR",
	"419":  "ru-RU",
	"804":  "zh-CN",
	"809":  "en-GB",
	"c09":  "en-AU",
	"9":    "en",
	"c0a":  "es-ES",
}

// sapiLanguages converts a Language attribute such as "409;9" into language tags.
// Unknown LCIDs are kept as is.
func sapiLanguages(attr string) (ls []string) {
	for _, p := range strings.Split(attr, ";") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		l, ok := sapiLCIDs[p]
		if !ok {
			l = p
		}
		if !containsString(ls, l) {
			ls = append(ls, l)
		}
	}
	return
}

// sapiRate converts words per minute into SAPI's -10..10 scale, which is logarithmic
func sapiRate(wpm int) int {
	r := int(math.Log(float64(wpm)/sapiReferenceWPM) / math.Log(sapiRateLogBase))
	if r < sapiMinRate {
		r = sapiMinRate
	} else if r > sapiMaxRate {
		r = sapiMaxRate
	}
	return r
}
