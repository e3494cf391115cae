package main

import (
	"transcription-api/cmd/transcription-api/cmd"
)

func main() {
	cmd.Execute()
}
