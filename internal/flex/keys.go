package flex

import (
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/cldflex/internal/xmltree"
	"github.com/mesh-intelligence/cldflex/pkg/types"
)

// Keys are the language codes that select items from a flextext.
type Keys struct {
	ObjLg      string // object language, the language being documented
	GlossLg    string // metalanguage of glosses and translations
	MsaLg      string // language of part-of-speech and msa items
	LanguageID string // Language_ID written to the output tables
}

// ResolveKeys fills in missing language settings of cfg from the document
// and returns the resolved keys. cfg is modified so later stages see the
// resolved values. Configured values always win over inference.
func ResolveKeys(doc *xmltree.Node, cfg *types.Config, logger zerolog.Logger) (Keys, error) {
	if cfg.GlossLg == "" {
		logger.Warn().
			Str("gloss_lg", types.DefaultGlossLanguage).
			Msg("gloss_lg not set, using default")
		cfg.GlossLg = types.DefaultGlossLanguage
	}
	if cfg.ObjLg == "" {
		lang := inferObjectLanguage(doc, cfg.GlossLg)
		if lang == "" {
			return Keys{}, &types.ConfigurationError{
				Msg: "cannot infer object language: no annotated items found",
			}
		}
		logger.Warn().
			Str("obj_lg", lang).
			Msg("obj_lg not set, assuming the first non-gloss language in the document")
		cfg.ObjLg = lang
	}
	if cfg.MsaLg == "" {
		cfg.MsaLg = cfg.GlossLg
	}
	if cfg.OutputLanguageID() == "" {
		cfg.LanguageID = cfg.ObjLg
	}
	return Keys{
		ObjLg:      cfg.ObjLg,
		GlossLg:    cfg.GlossLg,
		MsaLg:      cfg.MsaLg,
		LanguageID: cfg.OutputLanguageID(),
	}, nil
}

// inferObjectLanguage returns the language of the first annotated item that
// is not in the gloss language. Word and morph items are scanned before the
// rest of the document, since titles and translations are often in other
// languages.
func inferObjectLanguage(doc *xmltree.Node, glossLg string) string {
	var found string
	doc.Walk(func(n *xmltree.Node) bool {
		if found != "" {
			return false
		}
		if n.Name != "word" {
			return true
		}
		found = firstOtherLanguage(n, glossLg)
		return false
	})
	if found != "" {
		return found
	}
	doc.Walk(func(n *xmltree.Node) bool {
		if found != "" {
			return false
		}
		if n.Name == "item" && n.Attr("lang") != "" && n.Attr("lang") != glossLg && n.InnerText() != "" {
			found = n.Attr("lang")
		}
		return true
	})
	return found
}

func firstOtherLanguage(word *xmltree.Node, glossLg string) string {
	var found string
	word.Walk(func(n *xmltree.Node) bool {
		if found != "" {
			return false
		}
		if n.Name == "item" && n.Attr("lang") != "" && n.Attr("lang") != glossLg && n.InnerText() != "" {
			found = n.Attr("lang")
		}
		return true
	})
	return found
}
