package i18n

// englishMessages contains all English translations.
var englishMessages = map[string]string{
	// Error messages
	"error.no_songs":       "❌ No songs found!",
	"error.cancelled":      "Operation cancelled.",
	"error.input_missing":  "❌ Input file not found: %s",
	"error.deps_missing":   "❌ Missing dependencies: %s",
	"error.summary_failed": "⚠️ Could not save playlist info: %v",
	"error.history_failed": "⚠️ Could not use download history: %v",

	// Input handling
	"input.csv":         "📊 Processing Spotify CSV export: %s",
	"input.text":        "📝 Processing text file: %s",
	"input.row_skipped": "⚠️ Row %d skipped: %s",
	"input.csv_hint":    "For CSV files: use exportify.net to export your Spotify playlist",
	"input.text_hint":   "For TXT files: create a text file with 'Artist - Song' on each line",

	// Interactive prompts
	"prompt.title":       "🎵 Interactive Playlist Creator",
	"prompt.help":        "Enter songs in format 'Artist - Title' (or just 'Title')",
	"prompt.finish_hint": "Press Enter on an empty line to finish, or 'q' to quit",
	"prompt.song":        "Song %d:",
	"prompt.collected":   "✓ Collected %d songs",

	// Dependency checks
	"deps.checking":   "🔍 Checking dependencies...",
	"deps.missing":    "⚠️ %s not found",
	"deps.installed":  "✓ %s installed via %s",
	"deps.failed":     "❌ Failed to install %s. Please install it manually:",
	"deps.manual":     "   %s",
	"deps.batch_only": "⚠️ Continuing without dependencies because only the batch file is requested",
	"deps.skipped":    "⏭️ Dependency check skipped",

	// Batch results
	"result.found":      "✓ Found %d songs",
	"result.queries":    "🔍 Generating YouTube search queries (quality: %s)...",
	"result.duplicates": "⚠️ Skipped %d duplicate songs",
	"result.known":      "⚠️ Skipped %d songs already in download history",
	"result.empty":      "⚠️ Skipped %d songs without artist or title",
	"result.preview":    "🎵 Preview of songs to download:",
	"result.more":       "... and %d more",

	// Output files
	"output.batch":       "✓ Created %s with %d songs",
	"output.summary":     "✓ Saved playlist info to %s",
	"output.script":      "✓ Created executable script: %s",
	"output.batch_only":  "📄 Batch file created: %s",
	"output.setup_done":  "🚀 Setup complete! Now run:",
	"output.manual":      "🛠️ Or manually with yt-dlp:",
	"output.download":    "📊 This will download %d songs as %s files",
	"output.directory":   "📁 Output directory: %s",
	"output.history":     "✓ Recorded %d songs in download history",
	"output.metrics":     "✓ Wrote metrics to %s",
	"output.env_example": "✓ Wrote example configuration to %s",

	// Table headers
	"table.number": "#",
	"table.artist": "Artist",
	"table.title":  "Title",
	"table.search": "Search",
	"table.tool":   "Tool",
	"table.status": "Status",
	"table.detail": "Detail",
	"table.ok":     "ok",
	"table.absent": "missing",
}
