package llm

import "fmt"

const (
	classifyLimit = 12000
	scoreLimit    = 15000

	classifyMaxTokens = 1024
	scoreMaxTokens    = 3500
	retryMaxTokens    = 4000
)

const strictJSONSuffix = "\n\nIMPORTANT: Return ONLY valid JSON with no trailing commas. Double-check your JSON syntax.\n\nTranscript:\n"

const classifyTemplate = `Decide whether the following sales call transcript is a DISCOVERY call.

Treat it as discovery when ANY of the following happens:
1. The seller introduces the product, how it works, or demonstrates it.
2. The seller explores the prospect's current process, problems, team or tooling.
3. Features, integrations or capabilities are discussed against the prospect's needs.
4. Qualification topics come up: budget, timeline, decision process, stakeholders.
5. Both sides ask questions and share information.
6. The parties assess fit or discuss a possible trial.

A follow-up meeting still counts as discovery when needs and fit are genuinely explored.

It is NOT discovery when:
1. The prospect never joined or barely spoke and only the internal team talked.
2. The call is pure negotiation of price, contract or legal terms.
3. The call is pure troubleshooting of a specific technical issue.
4. The call only covers scheduling, onboarding logistics or account administration.

<transcript>
%s
</transcript>

Respond with ONLY a JSON object, no markdown and no extra text:
{
  "is_discovery_call": true or false,
  "reasoning": "one or two sentences explaining the decision against the criteria above"
}`

const scoreTemplate = `Score this discovery call transcript on each MEDDPICC dimension using a 0-5 scale.

Be strict. Award 4 or 5 only when the transcript contains explicit, specific evidence. Use 0 when a dimension is absent, vague or barely mentioned.

Metrics
5: quantified outcomes discussed (revenue, savings, time saved with numbers)
3: metrics mentioned without numbers
2: business outcomes discussed but not quantified
0: no metrics or only vague improvement talk

Economic Buyer
5: budget owner named with title and confirmed authority
4: budget owner identified, authority implied
3: budget ownership discussed but unconfirmed
0: unclear or not discussed

Decision Criteria
5: formal criteria (RFP, scorecard, evaluation matrix)
4: clear informal must-haves and priorities
2: some evaluation factors mentioned
0: not discussed

Decision Process
5: full process with steps, timeline and stakeholders
4: key steps and rough timeline
3: some process elements
0: not discussed

Paper Process
5: procurement and legal path mapped with timeline
4: key approval steps and owners identified
3: some procurement or legal requirements mentioned
0: not discussed

Identify Pain
5: critical pain with clear impact and urgency
4: significant pain with business impact
2: pain mentioned, impact unclear
0: no clear pain

Champion
5: champion committed to advocate internally and has influence
4: champion identified and supportive
3: potential champion, commitment unclear
1: friendly contact, not an advocate
0: none

Competition
5: named competing tools with strengths and weaknesses discussed
4: named competing tools with some context
3: competitors mentioned by category
2: vague awareness of alternatives
0: not discussed

<transcript>
%s
</transcript>

Respond with valid JSON in a markdown code block, with NO trailing commas, using exactly these keys:
{
  "scores": {
    "metrics": 0,
    "economic_buyer": 0,
    "decision_criteria": 0,
    "decision_process": 0,
    "paper_process": 0,
    "identify_pain": 0,
    "champion": 0,
    "competition": 0
  },
  "summary": "two or three sentences on the strongest and weakest areas",
  "notes": {
    "metrics": "evidence for the score",
    "economic_buyer": "evidence for the score",
    "decision_criteria": "evidence for the score",
    "decision_process": "evidence for the score",
    "paper_process": "evidence for the score",
    "identify_pain": "evidence for the score",
    "champion": "evidence for the score",
    "competition": "evidence for the score"
  }
}`

func classifyPrompt(transcript string) string {
	return fmt.Sprintf(classifyTemplate, transcript)
}

func scorePrompt(transcript string) string {
	return fmt.Sprintf(scoreTemplate, transcript)
}

// strictPrompt re-asks with the transcript repeated after a JSON reminder
func strictPrompt(base, transcript string) string {
	return base + strictJSONSuffix + transcript
}
