package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDefaultTheme(),
		thLightTheme(),
		thGruvboxTheme(),
		thNordTheme(),
		thDraculaTheme(),
	} {
		thRegister(t)
	}
}

// thDefaultTheme returns the dark neutral theme with purple accent.
func thDefaultTheme() Theme {
	return Theme{
		Name:       "default",
		Background: "#1e1e1e",
		Foreground: "#d4d4d4",
		Dim:        "#6b6b6b",
		Accent:     "#7C3AED",

		Border:      "#3e3e3e",
		BorderFocus: "#7C3AED",
		Title:       "#d4d4d4",

		Backdrop:   "#121212",
		RingFilled: "#a78bfa",
		RingEmpty:  "#3e3e3e",

		Error:    "#e06c75",
		HelpKey:  "#7C3AED",
		HelpDesc: "#6b6b6b",
	}
}

// thLightTheme returns a light palette for bright terminal backgrounds.
func thLightTheme() Theme {
	return Theme{
		Name:       "light",
		Background: "#fafafa",
		Foreground: "#27272a",
		Dim:        "#a1a1aa",
		Accent:     "#6d28d9",

		Border:      "#d4d4d8",
		BorderFocus: "#6d28d9",
		Title:       "#18181b",

		Backdrop:   "#e4e4e7",
		RingFilled: "#7c3aed",
		RingEmpty:  "#d4d4d8",

		Error:    "#dc2626",
		HelpKey:  "#6d28d9",
		HelpDesc: "#71717a",
	}
}

// thGruvboxTheme returns the warm retro Gruvbox theme.
func thGruvboxTheme() Theme {
	return Theme{
		Name:       "gruvbox",
		Background: "#282828",
		Foreground: "#ebdbb2",
		Dim:        "#928374",
		Accent:     "#fe8019",

		Border:      "#504945",
		BorderFocus: "#fe8019",
		Title:       "#fbf1c7",

		Backdrop:   "#1d2021",
		RingFilled: "#fabd2f",
		RingEmpty:  "#504945",

		Error:    "#fb4934",
		HelpKey:  "#fe8019",
		HelpDesc: "#928374",
	}
}

// thNordTheme returns the arctic Nord theme.
func thNordTheme() Theme {
	return Theme{
		Name:       "nord",
		Background: "#2e3440",
		Foreground: "#d8dee9",
		Dim:        "#4c566a",
		Accent:     "#88c0d0",

		Border:      "#3b4252",
		BorderFocus: "#88c0d0",
		Title:       "#eceff4",

		Backdrop:   "#242933",
		RingFilled: "#81a1c1",
		RingEmpty:  "#3b4252",

		Error:    "#bf616a",
		HelpKey:  "#88c0d0",
		HelpDesc: "#4c566a",
	}
}

// thDraculaTheme returns the Dracula theme.
func thDraculaTheme() Theme {
	return Theme{
		Name:       "dracula",
		Background: "#282a36",
		Foreground: "#f8f8f2",
		Dim:        "#6272a4",
		Accent:     "#bd93f9",

		Border:      "#44475a",
		BorderFocus: "#ff79c6",
		Title:       "#f8f8f2",

		Backdrop:   "#1e1f29",
		RingFilled: "#50fa7b",
		RingEmpty:  "#44475a",

		Error:    "#ff5555",
		HelpKey:  "#ff79c6",
		HelpDesc: "#6272a4",
	}
}
