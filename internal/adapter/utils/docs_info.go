// @title           Support Bot API
// @version         1.0
// @description     FAQ support chatbot: queued and synchronous answers, support tickets and session state.

// @contact.name    API Support
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package utils

//run redis
//docker run -p 6379:6379 -d redis

//run ollama
//docker run -p 11434:11434 -d ollama/ollama && docker exec <id> ollama pull llama3.2

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
