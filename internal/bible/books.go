package bible

import "strings"

type Testament string

const (
	OldTestament Testament = "Old"
	NewTestament Testament = "New"
)

// Book describes one canonical book: display name, the identifier the
// bible-api.com data endpoints expect, and its chapter count.
type Book struct {
	Name      string    `json:"name"`
	ID        string    `json:"id"`
	Chapters  int       `json:"chapters"`
	Testament Testament `json:"testament"`
}

// Books is the 66-book Protestant canon in canonical order.
var Books = []Book{
	{Name: "Genesis", ID: "GEN", Chapters: 50, Testament: OldTestament},
	{Name: "Exodus", ID: "EXO", Chapters: 40, Testament: OldTestament},
	{Name: "Leviticus", ID: "LEV", Chapters: 27, Testament: OldTestament},
	{Name: "Numbers", ID: "NUM", Chapters: 36, Testament: OldTestament},
	{Name: "Deuteronomy", ID: "DEU", Chapters: 34, Testament: OldTestament},
	{Name: "Joshua", ID: "JOS", Chapters: 24, Testament: OldTestament},
	{Name: "Judges", ID: "JDG", Chapters: 21, Testament: OldTestament},
	{Name: "Ruth", ID: "RUT", Chapters: 4, Testament: OldTestament},
	{Name: "1 Samuel", ID: "1SA", Chapters: 31, Testament: OldTestament},
	{Name: "2 Samuel", ID: "2SA", Chapters: 24, Testament: OldTestament},
	{Name: "1 Kings", ID: "1KI", Chapters: 22, Testament: OldTestament},
	{Name: "2 Kings", ID: "2KI", Chapters: 25, Testament: OldTestament},
	{Name: "1 Chronicles", ID: "1CH", Chapters: 29, Testament: OldTestament},
	{Name: "2 Chronicles", ID: "2CH", Chapters: 36, Testament: OldTestament},
	{Name: "Ezra", ID: "EZR", Chapters: 10, Testament: OldTestament},
	{Name: "Nehemiah", ID: "NEH", Chapters: 13, Testament: OldTestament},
	{Name: "Esther", ID: "EST", Chapters: 10, Testament: OldTestament},
	{Name: "Job", ID: "JOB", Chapters: 42, Testament: OldTestament},
	{Name: "Psalms", ID: "PSA", Chapters: 150, Testament: OldTestament},
	{Name: "Proverbs", ID: "PRO", Chapters: 31, Testament: OldTestament},
	{Name: "Ecclesiastes", ID: "ECC", Chapters: 12, Testament: OldTestament},
	{Name: "Song of Songs", ID: "SNG", Chapters: 8, Testament: OldTestament},
	{Name: "Isaiah", ID: "ISA", Chapters: 66, Testament: OldTestament},
	{Name: "Jeremiah", ID: "JER", Chapters: 52, Testament: OldTestament},
	{Name: "Lamentations", ID: "LAM", Chapters: 5, Testament: OldTestament},
	{Name: "Ezekiel", ID: "EZK", Chapters: 48, Testament: OldTestament},
	{Name: "Daniel", ID: "DAN", Chapters: 12, Testament: OldTestament},
	{Name: "Hosea", ID: "HOS", Chapters: 14, Testament: OldTestament},
	{Name: "Joel", ID: "JOL", Chapters: 3, Testament: OldTestament},
	{Name: "Amos", ID: "AMO", Chapters: 9, Testament: OldTestament},
	{Name: "Obadiah", ID: "OBA", Chapters: 1, Testament: OldTestament},
	{Name: "Jonah", ID: "JON", Chapters: 4, Testament: OldTestament},
	{Name: "Micah", ID: "MIC", Chapters: 7, Testament: OldTestament},
	{Name: "Nahum", ID: "NAM", Chapters: 3, Testament: OldTestament},
	{Name: "Habakkuk", ID: "HAB", Chapters: 3, Testament: OldTestament},
	{Name: "Zephaniah", ID: "ZEP", Chapters: 3, Testament: OldTestament},
	{Name: "Haggai", ID: "HAG", Chapters: 2, Testament: OldTestament},
	{Name: "Zechariah", ID: "ZEC", Chapters: 14, Testament: OldTestament},
	{Name: "Malachi", ID: "MAL", Chapters: 4, Testament: OldTestament},
	{Name: "Matthew", ID: "MAT", Chapters: 28, Testament: NewTestament},
	{Name: "Mark", ID: "MRK", Chapters: 16, Testament: NewTestament},
	{Name: "Luke", ID: "LUK", Chapters: 24, Testament: NewTestament},
	{Name: "John", ID: "JHN", Chapters: 21, Testament: NewTestament},
	{Name: "Acts", ID: "ACT", Chapters: 28, Testament: NewTestament},
	{Name: "Romans", ID: "ROM", Chapters: 16, Testament: NewTestament},
	{Name: "1 Corinthians", ID: "1CO", Chapters: 16, Testament: NewTestament},
	{Name: "2 Corinthians", ID: "2CO", Chapters: 13, Testament: NewTestament},
	{Name: "Galatians", ID: "GAL", Chapters: 6, Testament: NewTestament},
	{Name: "Ephesians", ID: "EPH", Chapters: 6, Testament: NewTestament},
	{Name: "Philippians", ID: "PHP", Chapters: 4, Testament: NewTestament},
	{Name: "Colossians", ID: "COL", Chapters: 4, Testament: NewTestament},
	{Name: "1 Thessalonians", ID: "1TH", Chapters: 5, Testament: NewTestament},
	{Name: "2 Thessalonians", ID: "2TH", Chapters: 3, Testament: NewTestament},
	{Name: "1 Timothy", ID: "1TI", Chapters: 6, Testament: NewTestament},
	{Name: "2 Timothy", ID: "2TI", Chapters: 4, Testament: NewTestament},
	{Name: "Titus", ID: "TIT", Chapters: 3, Testament: NewTestament},
	{Name: "Philemon", ID: "PHM", Chapters: 1, Testament: NewTestament},
	{Name: "Hebrews", ID: "HEB", Chapters: 13, Testament: NewTestament},
	{Name: "James", ID: "JAS", Chapters: 5, Testament: NewTestament},
	{Name: "1 Peter", ID: "1PE", Chapters: 5, Testament: NewTestament},
	{Name: "2 Peter", ID: "2PE", Chapters: 3, Testament: NewTestament},
	{Name: "1 John", ID: "1JN", Chapters: 5, Testament: NewTestament},
	{Name: "2 John", ID: "2JN", Chapters: 1, Testament: NewTestament},
	{Name: "3 John", ID: "3JN", Chapters: 1, Testament: NewTestament},
	{Name: "Jude", ID: "JUD", Chapters: 1, Testament: NewTestament},
	{Name: "Revelation", ID: "REV", Chapters: 22, Testament: NewTestament},
}

// FindBook resolves a book by display name or API identifier,
// case-insensitively. Returns nil when the name is not canonical.
func FindBook(nameOrID string) *Book {
	needle := strings.TrimSpace(nameOrID)
	for i := range Books {
		if strings.EqualFold(Books[i].Name, needle) || strings.EqualFold(Books[i].ID, needle) {
			return &Books[i]
		}
	}
	return nil
}

// ValidChapter reports whether the chapter number exists in the book.
func (b *Book) ValidChapter(chapter int) bool {
	return chapter >= 1 && chapter <= b.Chapters
}
