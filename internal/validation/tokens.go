package validation

// suspiciousTokens are injection and scripting fragments that have no place
// in a hostname label. Matching is substring on the lowercased candidate.
var suspiciousTokens = []string{
	"--", "/*", "*/", "union", "select", "insert", "update",
	"delete", "drop", "create", "alter", "exec", "eval",
	"script", "javascript", "vbscript", "onload", "onerror",
}

// blockedWords are reserved or impersonation-prone names. Substring matching
// is deliberately conservative: "admin-site" is rejected even though only
// "admin" is the reserved word.
var blockedWords = []string{
	"admin", "api", "www", "mail", "ftp", "ssh", "telnet",
	"root", "system", "config", "backup", "test", "dev",
	"staging", "beta", "alpha", "local", "localhost",
	"secure", "login", "auth", "oauth", "payment",
	"bank", "paypal", "stripe", "credit", "card",
}

// homographRunes are Cyrillic code points visually confusable with Latin
// letters, the raw material of lookalike phishing names.
var homographRunes = []rune{
	'а', // а looks like a
	'е', // е looks like e
	'о', // о looks like o
	'р', // р looks like p
	'с', // с looks like c
	'у', // у looks like y
	'х', // х looks like x
	'є', // є looks like e
	'і', // і looks like i
	'ї', // ї looks like i
	'ґ', // ґ looks like r
	'ӏ', // ӏ looks like l
}
