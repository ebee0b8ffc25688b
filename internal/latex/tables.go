package latex

// symbols maps runes to their LaTeX form. Every value is either a control
// symbol (\{), a command followed by an empty group (\ss{}), or a math-mode
// command ($\alpha$), which keeps the mapping reversible.
var symbols = map[rune]string{
	// Characters reserved by LaTeX.
	'\\': `\textbackslash{}`,
	'{':  `\{`,
	'}':  `\}`,
	'$':  `\$`,
	'&':  `\&`,
	'#':  `\#`,
	'_':  `\_`,
	'%':  `\%`,
	'~':  `\textasciitilde{}`,
	'^':  `\textasciicircum{}`,

	// Letters without a canonical decomposition.
	'ß': `\ss{}`,
	'æ': `\ae{}`,
	'Æ': `\AE{}`,
	'ø': `\o{}`,
	'Ø': `\O{}`,
	'œ': `\oe{}`,
	'Œ': `\OE{}`,
	'ł': `\l{}`,
	'Ł': `\L{}`,
	'ı': `\i{}`,
	'ȷ': `\j{}`,
	'þ': `\th{}`,
	'Þ': `\TH{}`,
	'ð': `\dh{}`,
	'Ð': `\DH{}`,
	'đ': `\dj{}`,
	'Đ': `\DJ{}`,
	'ŋ': `\ng{}`,
	'Ŋ': `\NG{}`,

	// Punctuation.
	'\u00a0': `~`,
	'–':      `\textendash{}`,
	'—':      `\textemdash{}`,
	'‘':      `\textquoteleft{}`,
	'’':      `\textquoteright{}`,
	'“':      `\textquotedblleft{}`,
	'”':      `\textquotedblright{}`,
	'„':      `\quotedblbase{}`,
	'‚':      `\quotesinglbase{}`,
	'«':      `\guillemotleft{}`,
	'»':      `\guillemotright{}`,
	'‹':      `\guilsinglleft{}`,
	'›':      `\guilsinglright{}`,
	'…':      `\textellipsis{}`,
	'¡':      `\textexclamdown{}`,
	'¿':      `\textquestiondown{}`,
	'•':      `\textbullet{}`,
	'·':      `\textperiodcentered{}`,
	'†':      `\textdagger{}`,
	'‡':      `\textdaggerdbl{}`,
	'§':      `\S{}`,
	'¶':      `\P{}`,

	// Symbols.
	'©': `\textcopyright{}`,
	'®': `\textregistered{}`,
	'™': `\texttrademark{}`,
	'°': `\textdegree{}`,
	'€': `\texteuro{}`,
	'£': `\pounds{}`,
	'¥': `\textyen{}`,
	'¢': `\textcent{}`,
	'µ': `\textmu{}`,
	'‰': `\textperthousand{}`,
	'×': `$\times$`,
	'÷': `$\div$`,
	'±': `$\pm$`,
	'\u2212': `$-$`,
	'≤': `$\leq$`,
	'≥': `$\geq$`,
	'≈': `$\approx$`,
	'∞': `$\infty$`,
	'→': `$\rightarrow$`,
	'←': `$\leftarrow$`,

	// Greek letters, set in math mode.
	'α': `$\alpha$`,
	'β': `$\beta$`,
	'γ': `$\gamma$`,
	'δ': `$\delta$`,
	'ε': `$\epsilon$`,
	'ζ': `$\zeta$`,
	'η': `$\eta$`,
	'θ': `$\theta$`,
	'ι': `$\iota$`,
	'κ': `$\kappa$`,
	'λ': `$\lambda$`,
	'μ': `$\mu$`,
	'ν': `$\nu$`,
	'ξ': `$\xi$`,
	'π': `$\pi$`,
	'ρ': `$\rho$`,
	'σ': `$\sigma$`,
	'ς': `$\varsigma$`,
	'τ': `$\tau$`,
	'υ': `$\upsilon$`,
	'φ': `$\phi$`,
	'χ': `$\chi$`,
	'ψ': `$\psi$`,
	'ω': `$\omega$`,
	'Γ': `$\Gamma$`,
	'Δ': `$\Delta$`,
	'Θ': `$\Theta$`,
	'Λ': `$\Lambda$`,
	'Ξ': `$\Xi$`,
	'Π': `$\Pi$`,
	'Σ': `$\Sigma$`,
	'Υ': `$\Upsilon$`,
	'Φ': `$\Phi$`,
	'Ψ': `$\Psi$`,
	'Ω': `$\Omega$`,
}

// accents maps combining marks to LaTeX accent commands.
var accents = map[rune]string{
	'\u0300': "`",
	'\u0301': "'",
	'\u0302': "^",
	'\u0303': "~",
	'\u0304': "=",
	'\u0306': "u",
	'\u0307': ".",
	'\u0308': `"`,
	'\u030a': "r",
	'\u030b': "H",
	'\u030c': "v",
	'\u0323': "d",
	'\u0327': "c",
	'\u0328': "k",
	'\u0331': "b",
}

var (
	// reverseSymbols maps a symbol's LaTeX form, without a trailing "{}",
	// back to its rune.
	reverseSymbols = make(map[string]rune, len(symbols))
	// reverseAccents maps accent command names to combining marks.
	reverseAccents = make(map[string]rune, len(accents))
)

func init() {
	for r, form := range symbols {
		reverseSymbols[trimEmptyGroup(form)] = r
	}
	for mark, name := range accents {
		reverseAccents[name] = mark
	}
}

func trimEmptyGroup(form string) string {
	if len(form) > 2 && form[len(form)-2:] == "{}" {
		return form[:len(form)-2]
	}
	return form
}
