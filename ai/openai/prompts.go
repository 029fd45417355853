package openai

import "fmt"

const summaryResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "title": {
      "type": "string"
    },
    "category": {
      "type": "string"
    },
    "takeaways": {
      "type": "array",
      "maxItems": 3,
      "items": {
        "type": "string"
      }
    },
    "content_tags": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "slug": {
            "type": "string",
            "pattern": "^[a-z0-9]+(_[a-z0-9]+)*$"
          },
          "weight": {
            "type": "integer",
            "minimum": 1,
            "maximum": 10
          },
          "segment_start": {
            "type": "integer",
            "minimum": 0,
            "maximum": 100
          },
          "segment_end": {
            "type": "integer",
            "minimum": 0,
            "maximum": 100
          }
        },
        "required": ["slug", "weight", "segment_start", "segment_end"],
        "additionalProperties": false
      }
    }
  },
  "required": ["title", "category", "takeaways", "content_tags"],
  "additionalProperties": false
}`

const summaryPromptTemplate = `Summarize the given content transcript into a structured summary and return it as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The title is a short descriptive title for the content, not a transcription of its opening line.
- The category is a single broad label such as "Cooking", "Fitness", or "Personal Finance".
- Takeaways are the key insights a viewer should remember. Provide at most 3, each a single short statement.
- Tag slugs must be lowercase snake_case, e.g. "italian_food".
- Weight is an integer from 1 (barely mentioned) to 10 (the central topic). Rate based on how much of the content is about the topic.
- segment_start and segment_end are percentages (0-100) bounding where in the content the topic is discussed. Ranges of different tags may overlap.
- Describe only what the content actually covers. Ignore keyword lists, repeated phrases, and other filler that does not reflect real subject matter. Do not hallucinate.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.



Example:
Input: "hey everyone today im showing you my grandmother's pasta recipe. first thing, always use fresh tomatoes ..."
Output:
{
  "title": "Grandmother's Pasta Recipe",
  "category": "Cooking",
  "takeaways": ["Use fresh tomatoes", "Salt the pasta water generously", "Cook until al dente"],
  "content_tags": [
    {"slug":"pasta","weight":9,"segment_start":0,"segment_end":100},
    {"slug":"italian_food","weight":6,"segment_start":0,"segment_end":60}
  ]
}

Example (content with off-topic padding):
Input: "BEST CRYPTO CASINO bonus codes ... anyway here is how to descale a kettle. fill it with vinegar and water ..."
Output:
{
  "title": "How to Descale a Kettle",
  "category": "Home Care",
  "takeaways": ["Use a vinegar and water mixture", "Let it soak before rinsing"],
  "content_tags": [
    {"slug":"kettle_descaling","weight":9,"segment_start":10,"segment_end":100}
  ]
}`

// buildSystemPrompt creates the system prompt with the response schema embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(summaryPromptTemplate, summaryResponseSchema)
}
