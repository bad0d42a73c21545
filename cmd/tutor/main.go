// Command tutor is an interactive terminal host for the assistant surface.
// It is a thin presentation layer: it renders the transcript the surface
// publishes and forwards typed prompts, nothing more.
package main

func main() {
	Execute()
}
