package openai

const analysisResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "intent": {"type": "string"},
    "concepts": {"type": "array", "items": {"type": "string"}},
    "discourse_elements": {"type": "array", "items": {"type": "string"}},
    "scripture_references": {"type": "array", "items": {"type": "string"}},
    "named_entities": {"type": "array", "items": {"type": "string"}},
    "sources": {"type": "array", "items": {"type": "string"}},
    "authors": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["intent", "concepts", "discourse_elements",
               "scripture_references", "named_entities", "sources", "authors"],
  "additionalProperties": false
}`

const analysisPromptTemplate = `You analyze research questions about theological texts and return search guidance as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "intent" is a one-line restatement of what the researcher wants to find.
- "concepts" are theological concepts the relevant passages would be tagged with, e.g. "Concept/Justification".
- "discourse_elements" classify the kind of passage sought: "Argument", "Exhortation", "Narrative", "Prayer", "Exposition".
- "scripture_references" are Bible references the question points at, e.g. "John 3:16" or "Romans 8". Include a reference only when the question names or clearly alludes to it.
- "named_entities" are people, places, or councils named in the question.
- "sources" and "authors" list works or writers ONLY when the question explicitly restricts to them.
- Leave any category you are unsure about as an empty array. Do not hallucinate filters.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "What does Calvin say about providence in the Institutes?"
Output:
{
  "intent": "Calvin's teaching on divine providence",
  "concepts": ["Concept/Providence"],
  "discourse_elements": [],
  "scripture_references": [],
  "named_entities": [],
  "sources": ["Institutes of the Christian Religion"],
  "authors": ["John Calvin"]
}

Example:
Input: "how is John 3:16 used in arguments about the extent of the atonement"
Output:
{
  "intent": "Use of John 3:16 in debates over the extent of the atonement",
  "concepts": ["Concept/Atonement"],
  "discourse_elements": ["Argument"],
  "scripture_references": ["John 3:16"],
  "named_entities": [],
  "sources": [],
  "authors": []
}`

const summaryPromptTemplate = `You are a research assistant for theological texts. Answer the question using ONLY the numbered passages provided. Cite passages by their number, like [1] or [3]. If the passages do not answer the question, say so plainly. Keep the answer under 200 words.`
