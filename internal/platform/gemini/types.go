package gemini

// responseSchema is the JSON structure the model is instructed to reply
// with. Field names stay in English regardless of the language pair.
type responseSchema struct {
	Translations []translationSchema `json:"translations"`
}

type translationSchema struct {
	WordToTranslate string             `json:"word_to_translate"`
	PartOfSpeech    string             `json:"part_of_speech"`
	Definitions     []definitionSchema `json:"definitions"`
}

type definitionSchema struct {
	Text          string               `json:"text"`
	SentencePairs []sentencePairSchema `json:"sentence_pairs"`
}

type sentencePairSchema struct {
	SourceSentence string `json:"source_sentence"`
	TargetSentence string `json:"target_sentence"`
}
