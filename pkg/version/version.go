package version

var (
	// These values are injected during build - DO NOT MODIFY
	Version   = "dev"
	CommitSHA = "unknown"
)

func GetVersionInfo() string {
	return "notesmargin " + Version
}

func GetDetailedVersionInfo() string {
	return "notesmargin\n" +
		"Version:  " + Version + "\n" +
		"Commit:   " + CommitSHA + "\n"
}

// Producer is stamped into the PDFs notesmargin writes.
func Producer() string {
	return "notesmargin/" + Version
}
