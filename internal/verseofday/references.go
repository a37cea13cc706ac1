package verseofday

// Reference names a verse by book, chapter and verse number.
type Reference struct {
	Book    string
	Chapter int
	Verse   int
}

// references is the curated rotation for the verse of the day.
// The pick for a given date is deterministic, so every user sees the
// same verse and restarts don't change the selection mid-day.
var references = []Reference{
	{Book: "Genesis", Chapter: 1, Verse: 1},
	{Book: "Exodus", Chapter: 14, Verse: 14},
	{Book: "Deuteronomy", Chapter: 31, Verse: 6},
	{Book: "Joshua", Chapter: 1, Verse: 9},
	{Book: "1 Chronicles", Chapter: 16, Verse: 11},
	{Book: "Psalms", Chapter: 23, Verse: 1},
	{Book: "Psalms", Chapter: 27, Verse: 1},
	{Book: "Psalms", Chapter: 34, Verse: 8},
	{Book: "Psalms", Chapter: 46, Verse: 1},
	{Book: "Psalms", Chapter: 51, Verse: 10},
	{Book: "Psalms", Chapter: 90, Verse: 12},
	{Book: "Psalms", Chapter: 118, Verse: 24},
	{Book: "Psalms", Chapter: 119, Verse: 105},
	{Book: "Psalms", Chapter: 121, Verse: 1},
	{Book: "Psalms", Chapter: 139, Verse: 14},
	{Book: "Proverbs", Chapter: 3, Verse: 5},
	{Book: "Proverbs", Chapter: 16, Verse: 3},
	{Book: "Proverbs", Chapter: 18, Verse: 10},
	{Book: "Ecclesiastes", Chapter: 3, Verse: 1},
	{Book: "Isaiah", Chapter: 26, Verse: 3},
	{Book: "Isaiah", Chapter: 40, Verse: 31},
	{Book: "Isaiah", Chapter: 41, Verse: 10},
	{Book: "Isaiah", Chapter: 43, Verse: 2},
	{Book: "Jeremiah", Chapter: 29, Verse: 11},
	{Book: "Lamentations", Chapter: 3, Verse: 22},
	{Book: "Micah", Chapter: 6, Verse: 8},
	{Book: "Zephaniah", Chapter: 3, Verse: 17},
	{Book: "Matthew", Chapter: 5, Verse: 14},
	{Book: "Matthew", Chapter: 6, Verse: 33},
	{Book: "Matthew", Chapter: 11, Verse: 28},
	{Book: "Matthew", Chapter: 28, Verse: 19},
	{Book: "Mark", Chapter: 10, Verse: 27},
	{Book: "Luke", Chapter: 6, Verse: 31},
	{Book: "John", Chapter: 3, Verse: 16},
	{Book: "John", Chapter: 8, Verse: 12},
	{Book: "John", Chapter: 14, Verse: 6},
	{Book: "John", Chapter: 16, Verse: 33},
	{Book: "Romans", Chapter: 8, Verse: 28},
	{Book: "Romans", Chapter: 12, Verse: 2},
	{Book: "Romans", Chapter: 15, Verse: 13},
	{Book: "1 Corinthians", Chapter: 10, Verse: 13},
	{Book: "1 Corinthians", Chapter: 13, Verse: 4},
	{Book: "1 Corinthians", Chapter: 16, Verse: 14},
	{Book: "2 Corinthians", Chapter: 5, Verse: 7},
	{Book: "Galatians", Chapter: 5, Verse: 22},
	{Book: "Galatians", Chapter: 6, Verse: 9},
	{Book: "Ephesians", Chapter: 2, Verse: 8},
	{Book: "Philippians", Chapter: 4, Verse: 6},
	{Book: "Philippians", Chapter: 4, Verse: 13},
	{Book: "Colossians", Chapter: 3, Verse: 23},
	{Book: "1 Thessalonians", Chapter: 5, Verse: 16},
	{Book: "2 Timothy", Chapter: 1, Verse: 7},
	{Book: "Hebrews", Chapter: 11, Verse: 1},
	{Book: "Hebrews", Chapter: 13, Verse: 8},
	{Book: "James", Chapter: 1, Verse: 5},
	{Book: "1 Peter", Chapter: 5, Verse: 7},
	{Book: "1 John", Chapter: 4, Verse: 19},
	{Book: "Revelation", Chapter: 21, Verse: 4},
}
