package scripture

import "strings"

// CanonicalBooks lists the 66 books of the Protestant canon in order.
// These spellings are the only ones that appear in normalized references.
var CanonicalBooks = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Solomon", "Isaiah", "Jeremiah", "Lamentations",
	"Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi",
	"Matthew", "Mark", "Luke", "John", "Acts",
	"Romans", "1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians",
	"1 Timothy", "2 Timothy", "Titus", "Philemon", "Hebrews",
	"James", "1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
}

// bookAliases maps lookup keys (see canonKey) to canonical book names.
// Keys are lowercase with periods stripped and ordinal prefixes already
// folded to digits, so "Jn.", "jn" and "JN" all land on the same entry.
var bookAliases = map[string]string{
	"gen": "Genesis", "ge": "Genesis", "gn": "Genesis",
	"exod": "Exodus", "exo": "Exodus", "ex": "Exodus",
	"lev": "Leviticus", "lv": "Leviticus",
	"num": "Numbers", "nm": "Numbers", "nu": "Numbers", "numb": "Numbers",
	"deut": "Deuteronomy", "deu": "Deuteronomy", "dt": "Deuteronomy",
	"josh": "Joshua", "jos": "Joshua",
	"judg": "Judges", "jdg": "Judges", "jgs": "Judges",
	"ru": "Ruth", "rth": "Ruth",
	"1 sam": "1 Samuel", "1 sa": "1 Samuel", "1sam": "1 Samuel",
	"2 sam": "2 Samuel", "2 sa": "2 Samuel", "2sam": "2 Samuel",
	"1 kgs": "1 Kings", "1 ki": "1 Kings", "1kgs": "1 Kings",
	"2 kgs": "2 Kings", "2 ki": "2 Kings", "2kgs": "2 Kings",
	"1 chron": "1 Chronicles", "1 chr": "1 Chronicles", "1 ch": "1 Chronicles",
	"2 chron": "2 Chronicles", "2 chr": "2 Chronicles", "2 ch": "2 Chronicles",
	"ezr": "Ezra",
	"neh": "Nehemiah", "ne": "Nehemiah",
	"esth": "Esther", "est": "Esther",
	"jb": "Job",
	"ps": "Psalms", "psa": "Psalms", "psalm": "Psalms", "pss": "Psalms",
	"prov": "Proverbs", "pro": "Proverbs", "prv": "Proverbs",
	"eccl": "Ecclesiastes", "eccles": "Ecclesiastes", "ecc": "Ecclesiastes", "qoheleth": "Ecclesiastes",
	"song": "Song of Solomon", "song of songs": "Song of Solomon",
	"sos": "Song of Solomon", "canticles": "Song of Solomon", "cant": "Song of Solomon",
	"isa": "Isaiah", "is": "Isaiah",
	"jer": "Jeremiah", "je": "Jeremiah",
	"lam": "Lamentations", "la": "Lamentations",
	"ezek": "Ezekiel", "eze": "Ezekiel", "ezk": "Ezekiel",
	"dan": "Daniel", "dn": "Daniel", "da": "Daniel",
	"hos": "Hosea", "ho": "Hosea",
	"jl": "Joel", "joe": "Joel",
	"am": "Amos", "amo": "Amos",
	"obad": "Obadiah", "ob": "Obadiah",
	"jon": "Jonah", "jnh": "Jonah",
	"mic": "Micah", "mi": "Micah",
	"nah": "Nahum", "na": "Nahum",
	"hab": "Habakkuk", "hb": "Habakkuk",
	"zeph": "Zephaniah", "zep": "Zephaniah",
	"hag": "Haggai", "hg": "Haggai",
	"zech": "Zechariah", "zec": "Zechariah", "zch": "Zechariah",
	"mal": "Malachi", "ml": "Malachi",
	"matt": "Matthew", "mat": "Matthew", "mt": "Matthew",
	"mk": "Mark", "mrk": "Mark", "mar": "Mark",
	"lk": "Luke", "luk": "Luke",
	"jn": "John", "jhn": "John", "joh": "John",
	"act": "Acts", "ac": "Acts", "acts of the apostles": "Acts",
	"rom": "Romans", "ro": "Romans", "rm": "Romans",
	"1 cor": "1 Corinthians", "1 co": "1 Corinthians", "1cor": "1 Corinthians",
	"2 cor": "2 Corinthians", "2 co": "2 Corinthians", "2cor": "2 Corinthians",
	"gal": "Galatians", "ga": "Galatians",
	"eph": "Ephesians",
	"phil": "Philippians", "php": "Philippians", "phili": "Philippians",
	"col": "Colossians",
	"1 thess": "1 Thessalonians", "1 thes": "1 Thessalonians", "1 th": "1 Thessalonians",
	"2 thess": "2 Thessalonians", "2 thes": "2 Thessalonians", "2 th": "2 Thessalonians",
	"1 tim": "1 Timothy", "1 ti": "1 Timothy", "1tim": "1 Timothy",
	"2 tim": "2 Timothy", "2 ti": "2 Timothy", "2tim": "2 Timothy",
	"tit": "Titus", "ti": "Titus",
	"philem": "Philemon", "phm": "Philemon", "phlm": "Philemon",
	"heb": "Hebrews",
	"jas": "James", "jam": "James", "jm": "James",
	"1 pet": "1 Peter", "1 pe": "1 Peter", "1 pt": "1 Peter", "1pet": "1 Peter",
	"2 pet": "2 Peter", "2 pe": "2 Peter", "2 pt": "2 Peter", "2pet": "2 Peter",
	"1 jn": "1 John", "1 jo": "1 John", "1jn": "1 John",
	"2 jn": "2 John", "2 jo": "2 John", "2jn": "2 John",
	"3 jn": "3 John", "3 jo": "3 John", "3jn": "3 John",
	"jud": "Jude", "jde": "Jude",
	"rev": "Revelation", "re": "Revelation", "rv": "Revelation",
	"apocalypse": "Revelation", "revelations": "Revelation",
}

// bookLookup is the complete key -> canonical name index, covering both
// the canonical spellings themselves and every alias.
var bookLookup = buildBookLookup()

func buildBookLookup() map[string]string {
	lookup := make(map[string]string, len(CanonicalBooks)+len(bookAliases))
	for _, name := range CanonicalBooks {
		lookup[canonKey(name)] = name
	}
	for key, name := range bookAliases {
		lookup[key] = name
	}
	return lookup
}

// canonKey folds a raw book name into the lookup key form: lowercase,
// periods stripped, whitespace collapsed, ordinal prefixes ("I", "II",
// "III", "1st", "first", ...) folded to plain digits.
func canonKey(book string) string {
	s := strings.ToLower(strings.TrimSpace(book))
	s = strings.ReplaceAll(s, ".", "")
	fields := strings.Fields(s)
	if len(fields) > 1 {
		switch fields[0] {
		case "i", "1st", "first":
			fields[0] = "1"
		case "ii", "2nd", "second":
			fields[0] = "2"
		case "iii", "3rd", "third":
			fields[0] = "3"
		}
	}
	return strings.Join(fields, " ")
}

// ResolveBook resolves a raw book name, possibly abbreviated, to its
// canonical spelling.
func ResolveBook(raw string) (string, error) {
	if name, ok := bookLookup[canonKey(raw)]; ok {
		return name, nil
	}
	return "", ErrUnknownBook
}
