// Command neuro chats with the supervisor, queries TMDB, seeds documents, and
// issues API tokens from a terminal.
package main

func main() {
	Execute()
}
