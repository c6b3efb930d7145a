// Package importers loads vocabulary lists into word groups.
//
// # Input Format
//
// A vocabulary list is a JSON array of entries:
//
//	[
//	  {"kanji": "こんにちは", "romaji": "konnichiwa", "english": "hello",
//	   "parts": [{"kanji": "今", "romaji": ["kon"]}]}
//	]
//
// The parts field is optional. When it is absent and a PartsFiller is
// configured, the importer derives a breakdown from the kanji form.
//
// # Example Usage
//
//	importer := importers.NewVocabularyImporter(groupsRepo, wordsRepo,
//	    importers.WithPartsFiller(analyzer))
//
//	items, err := importers.ParseVocabulary(file)
//	result, err := importer.ImportByName(ctx, "Basic Greetings", items)
package importers
