// Package openai implements the ai service interfaces against any
// OpenAI-compatible API (OpenAI, Ollama, LocalAI, vLLM). Query analysis
// uses JSON mode with retry and repair, since smaller local models
// occasionally emit malformed JSON.
package openai
