// cmd/pyraseq/main.go
package main

import (
	"github.com/UriNeri/pyraseq/internal/app"
	"github.com/UriNeri/pyraseq/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
