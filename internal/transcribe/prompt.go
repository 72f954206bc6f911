package transcribe

// MaxDocumentChars is the character budget for document text sent to the
// transcription service. Content beyond it is silently excluded; statements
// long enough to hit the limit lose their tail.
const MaxDocumentChars = 8000

// BuildStatementPrompt constructs the transcription prompt for one
// statement's extracted text. The instructions demand a strict JSON object
// so the response can be decoded at a single boundary.
func BuildStatementPrompt(text string) string {
	basePrompt :=
		"You are a bank statement transcriber.\n\n" +
			"Task:\n" +
			"- Read the statement text below and transcribe it into structured data.\n" +
			"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
			"- Output a single JSON object.\n\n" +
			"The object must have these fields:\n" +
			"- \"name\": string or null (account holder name)\n" +
			"- \"address\": string or null\n" +
			"- \"date\": string or null (statement date as printed)\n" +
			"- \"startingBalance\": number or null\n" +
			"- \"endingBalance\": number or null\n" +
			"- \"currency\": string or null (e.g. \"GBP\")\n" +
			"- \"transactions\": array of objects, one per transaction, in statement order\n\n" +
			"Each transaction object must have these fields:\n" +
			"- \"date\": string, as printed on the statement\n" +
			"- \"description\": string\n" +
			"- \"moneyIn\": number or null (credit amount, never negative)\n" +
			"- \"moneyOut\": number or null (debit amount, never negative)\n" +
			"- \"currency\": string or null\n\n"

	rulesPrompt :=
		"Rules:\n" +
			"- A transaction is either money in or money out, never both.\n" +
			"- Use null for anything you cannot read; do not guess amounts.\n" +
			"- If a value is unreadable, prefer omitting the transaction over inventing one.\n\n" +
			"Return ONLY valid raw JSON.\n" +
			"Do NOT wrap the response in code fences.\n" +
			"Do NOT use ```json or any Markdown.\n" +
			"Output must begin with \"{\" and end with \"}\".\n\n"

	return basePrompt + rulesPrompt + "Statement text:\n" + Truncate(text, MaxDocumentChars)
}

// Truncate cuts text to at most limit characters (runes, not bytes).
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
