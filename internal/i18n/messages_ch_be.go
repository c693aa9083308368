package i18n

// berneseGermanMessages contains all Bernese Swiss German (Bärndütsch) translations
var berneseGermanMessages = map[string]string{
	// Error messages
	"error.no_songs":       "❌ Ha kei Lieder gfunde!",
	"error.cancelled":      "Abbroche.",
	"error.input_missing":  "❌ D Iigabedatei git's nid: %s",
	"error.deps_missing":   "❌ Es fähle Abhängigkeite: %s",
	"error.summary_failed": "⚠️ Ha d Playlist-Infos nid chönne spichere: %v",
	"error.history_failed": "⚠️ Ha d Download-Gschicht nid chönne bruche: %v",

	// Input handling
	"input.csv":         "📊 Verarbeite Spotify-CSV-Export: %s",
	"input.text":        "📝 Verarbeite Textdatei: %s",
	"input.row_skipped": "⚠️ Zile %d übersprunge: %s",
	"input.csv_hint":    "Für CSV-Dateie: Exportier dini Spotify-Playliste mit exportify.net",
	"input.text_hint":   "Für TXT-Dateie: Mach e Textdatei mit 'Künstler - Lied' uf jedere Zile",

	// Interactive prompts
	"prompt.title":       "🎵 Interaktive Playlist-Ersteller",
	"prompt.help":        "Gib d Lieder als 'Künstler - Titel' i (oder nume 'Titel')",
	"prompt.finish_hint": "Drück Enter uf ere lääre Zile zum Fertigmache, oder 'q' zum Ufhöre",
	"prompt.song":        "Lied %d:",
	"prompt.collected":   "✓ %d Lieder gsammlet",

	// Dependency checks
	"deps.checking":   "🔍 Prüefe Abhängigkeite...",
	"deps.missing":    "⚠️ %s nid gfunde",
	"deps.installed":  "✓ %s installiert über %s",
	"deps.failed":     "❌ Ha %s nid chönne installiere. Bitte vo Hand installiere:",
	"deps.manual":     "   %s",
	"deps.batch_only": "⚠️ Mache ohni Abhängigkeite wiiter, wüu nume d Batch-Datei gfragt isch",
	"deps.skipped":    "⏭️ Abhängigkeits-Prüefig übersprunge",

	// Batch results
	"result.found":      "✓ %d Lieder gfunde",
	"result.queries":    "🔍 Mache YouTube-Suechafroge (Qualität: %s)...",
	"result.duplicates": "⚠️ %d doppleti Lieder übersprunge",
	"result.known":      "⚠️ %d Lieder übersprunge, wo scho abeglade worde sy",
	"result.empty":      "⚠️ %d Lieder ohni Künstler oder Titel übersprunge",
	"result.preview":    "🎵 Vorschou vo de Lieder zum Abelade:",
	"result.more":       "... und no %d meh",

	// Output files
	"output.batch":       "✓ %s mit %d Lieder erstellt",
	"output.summary":     "✓ Playlist-Infos i %s gspicheret",
	"output.script":      "✓ Usfüehrbars Skript erstellt: %s",
	"output.batch_only":  "📄 Batch-Datei erstellt: %s",
	"output.setup_done":  "🚀 Fertig igrichtet! Jitz usfüehre:",
	"output.manual":      "🛠️ Oder vo Hand mit yt-dlp:",
	"output.download":    "📊 Das ladet %d Lieder als %s-Dateie abe",
	"output.directory":   "📁 Zieuordner: %s",
	"output.history":     "✓ %d Lieder i d Download-Gschicht ytreit",
	"output.metrics":     "✓ Metrike i %s gschribe",
	"output.env_example": "✓ Bispiu-Konfiguration i %s gschribe",

	// Table headers
	"table.number": "#",
	"table.artist": "Künstler",
	"table.title":  "Titel",
	"table.search": "Suechi",
	"table.tool":   "Wärchzüg",
	"table.status": "Status",
	"table.detail": "Detail",
	"table.ok":     "ok",
	"table.absent": "fählt",
}
