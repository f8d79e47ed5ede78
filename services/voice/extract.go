// File: services/voice/extract.go
package voice

import (
	"regexp"

	"frontdesk/models"
)

// Extraction is approximate by nature: the patterns accept anything
// phone/email shaped and do not verify correctness.
var (
	phonePattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
)

// ExtractCustomerInfo scrapes a phone number and email address out of a
// customer utterance. Both extractions run every time; the last match in the
// utterance wins and later utterances always overwrite earlier values.
func ExtractCustomerInfo(transcript string, session *models.CallSession) {
	if matches := phonePattern.FindAllString(transcript, -1); len(matches) > 0 {
		session.CustomerPhone = matches[len(matches)-1]
	}
	if matches := emailPattern.FindAllString(transcript, -1); len(matches) > 0 {
		session.CustomerEmail = matches[len(matches)-1]
	}
}
