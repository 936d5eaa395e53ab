package analysis

import (
	"fmt"
	"strings"
)

// SystemPrompt instructs the model to analyze one sentence and return the
// analysis JSON.
const SystemPrompt = `You are a linguistic engine for an English learning app.
Analyze the text provided by the user.

1. **Objective:** Analyze the content deeply (Translation, Insight, Vocabulary).
   - Do NOT split the text. Treat it as a single unit.

2. **Extract Vocabulary ("knowledge") Comprehensively:**
   - Identify legitimate learning words/phrases across ALL proficiency levels (A1 to C2).
   - **Crucial:** Do NOT ignore simple words (A1-A2). We need them for beginners.
   - Also ensure advanced words (C1-C2) are captured.
   - Assign a strict CEFR integer difficulty level:
     1 = A1 (Beginner)
     2 = A2 (Elementary)
     3 = B1 (Intermediate)
     4 = B2 (Upper Intermediate)
     5 = C1 (Advanced)
     6 = C2 (Proficiency/Rare)
   - "context" must quote the word exactly as it is inflected in the text.

3. **Tasks:**
   - **Translate**: specific, natural Chinese translation.
   - **Insight**: Provide a brief linguistic or thematic insight.
   - **X-Ray**: Analyze sentence structure. Focus on complex patterns (clauses, connectors). Skip trivial analysis for simple sentences.
   - **Companion**: Optionally add a short literary, historical or cultural note.

4. **Return a VALID JSON object**:
{
  "translation": "Chinese translation...",
  "insight": { "tag": "Theme/Tone", "text": "Brief analysis..." },
  "xray": {
    "pattern": "Sentence pattern name (e.g., 'which 定语从句', 'so...that 结果状语从句')",
    "breakdown": "Structure breakdown (e.g., '主句 + which引导的定语从句'). Only for complex sentences.",
    "keyWords": [
      { "word": "which", "role": "关系代词，引导定语从句" }
    ],
    "explanation": "理解要点 - 用简单中文解释这个结构的作用"
  },
  "companion": { "tag": "Culture", "text": "Optional note..." },
  "knowledge": [
    {
      "key": "unique_word_stem",
      "word": "Display Word",
      "ipa": "/ipa/",
      "def": "Concise Chinese Definition",
      "clue": "English Synonym/Hint",
      "diff": 1-6,
      "context": "Short collocation"
    }
  ]
}`

// ChatSystemPrompt frames the reading coach around the paragraph being read.
func ChatSystemPrompt(paragraph string) string {
	return fmt.Sprintf(`You are an expert reading coach. The user is reading a paragraph.
Context Paragraph: "%s".
Answer the user's question briefly and helpfully using **Chinese** (you may use English for specific terms or examples).
**Constraint: Keep your answer under 80 words and very concise.**
Focus on vocabulary, nuance, and comprehension.`, strings.TrimSpace(paragraph))
}

// Chip is a quick-action question offered next to a paragraph.
type Chip struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

// Chips are the quick actions in display order.
var Chips = []Chip{
	{ID: "simple", Label: "👶 简单解释", Prompt: "请像给5岁孩子讲故事一样，简单解释这段话在说什么。"},
	{ID: "deep", Label: "🤯 深度解析", Prompt: "请深度解析这段话的逻辑和语境，帮我建立 mental model。"},
	{ID: "grammar", Label: "📐 语法拆解", Prompt: "请用中文分析这段话的语法结构，拆解长难句。"},
	{ID: "idioms", Label: "💎 地道表达", Prompt: "这段话里有哪些值得积累的地道表达或搭配？"},
}

// ChipPrompt returns the prompt of the chip with id.
func ChipPrompt(id string) (string, bool) {
	for _, c := range Chips {
		if c.ID == id {
			return c.Prompt, true
		}
	}
	return "", false
}
