package relay

import "github.com/stretchr/testify/mock"

// MatchEnvelopeData creates a custom matcher for encoded envelope arguments
// in mocks, decoding the queued bytes before applying the matcher
func MatchEnvelopeData(matcher func(Envelope) bool) interface{} {
	return mock.MatchedBy(func(data []byte) bool {
		e, err := DecodeEnvelope(data)
		if err != nil {
			return false
		}
		return matcher(e)
	})
}
