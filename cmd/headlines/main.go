// headlines asks an LLM with live web search for today's main Brazil news
// and prints the answer with its token usage.
//
// Usage:
//
//	# Chat Completions with the web_search tool (OPENAI_API_KEY from env or .env)
//	headlines
//
//	# Responses API with the preview search tool
//	headlines --api responses --tool web_search_preview
//
//	# Different model, JSON output
//	headlines --model gpt-4o --output json
//
//	# Show version information
//	headlines version
package main

func main() {
	Execute()
}
