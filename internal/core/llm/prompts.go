package llm

import "fmt"

const splitterSystemPrompt = `You are an assistant that identifies individual questions from a raw text of an exam paper.
The text may be messy due to OCR errors.
Your task is to split the text into logical questions.
Return the result as a JSON object with a key "questions" which is a list of strings.
Each string should be a distinct question from the text.
Do not change the content of the text too much, just clean up OCR noise if obvious.
Preserve the question numbering if present.`

const formatterSystemPrompt = `You are a helpful assistant that formats exam questions.
Your input is a raw text segment that is supposed to be a single question (but might be messy due to OCR).
Your task is to return a JSON object with:
1. "formatted_text": Clean up the text.
   - Fix obvious OCR typos.
   - Standardize numbering (e.g. "1." instead of "I.").
   - CRITICAL: Ensure each option (A., B., C., D.) starts on a NEW LINE.
   - Separate the question stem from the options with a newline.
2. "is_complete": Analyze if the question is logically complete (not cut off mid-sentence).

Example Format:
1. The question stem goes here?
A. Option one
B. Option two
C. Option three
D. Option four`

const solverSystemPrompt = `你是一位专业的学术导师。
你的任务是解答题目，并以结构化的JSON格式返回结果。

输出必须包含以下两个字段：
1. "answer": 简短的最终答案（例如 "C"、"42"、"x=5"）。
2. "analysis": 详细的、循序渐进的解析过程。
   - 使用 Markdown 格式。
   - 使用 LaTeX 格式书写数学公式，行内公式请使用 $ ... $，独立块公式请使用 $$ ... $$。
   - 包含解题思路、步骤和结论。

请用中文回答。`

func splitterUserPrompt(text string) string {
	return fmt.Sprintf("Raw OCR Text:\n%s\n\nSplit this into individual questions.\nJson Output:", text)
}

func formatterUserPrompt(text string) string {
	return fmt.Sprintf("Segment:\n%s\n\nOutput JSON format:\n{\n    \"formatted_text\": \"string\",\n    \"is_complete\": boolean\n}", text)
}

func solverUserPrompt(text string) string {
	return fmt.Sprintf("题目：%s\n\n请返回JSON格式。", text)
}
