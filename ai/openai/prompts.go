package openai

const sentimentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "polarity": {
      "type": "number",
      "minimum": -1,
      "maximum": 1
    },
    "subjectivity": {
      "type": "number",
      "minimum": 0,
      "maximum": 1
    }
  },
  "required": ["polarity", "subjectivity"],
  "additionalProperties": false
}`

const sentimentPrompt = `Score the sentiment of the given text and return the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

` + sentimentResponseSchema + `

Rules:
- Polarity is a number from -1.0 (entirely negative) to 1.0 (entirely positive). Use 0.0 for neutral or purely factual text.
- Subjectivity is a number from 0.0 (objective statement of fact) to 1.0 (pure personal opinion).
- Score the text as written; do not infer sentiment that is not expressed.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example (positive):
Input: "Absolutely loved this game, we played three rounds back to back."
Output:
{"polarity": 0.8, "subjectivity": 0.9}

Example (negative):
Input: "The rulebook is a mess and the game drags on forever."
Output:
{"polarity": -0.6, "subjectivity": 0.7}

Example (neutral, factual):
Input: "The box contains 120 cards and a folding board."
Output:
{"polarity": 0.0, "subjectivity": 0.0}`
