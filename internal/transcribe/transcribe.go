package transcribe

// Word is a timestamped word from the speech-to-text engine.
// Times are in seconds, relative to the audio passed in.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Utterance is one contiguous stretch of speech with word-level timestamps.
type Utterance struct {
	Text  string
	Start float64
	End   float64
	Words []Word
}
