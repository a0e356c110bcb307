package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultAPIURL = "http://localhost:5000"

func main() {
	apiURL := os.Getenv("PORTFOLIO_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	p := tea.NewProgram(initialModel(newAPIClient(apiURL)))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
