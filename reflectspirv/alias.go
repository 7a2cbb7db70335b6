package reflectspirv

import (
	"github.com/gogpu/filterchain/preset"
	"github.com/gogpu/filterchain/semantics"
)

// BuildAliasTable implements load_pass_semantics (EXPANSION C.4): every
// pass with a non-empty alias registers two texture names (its output
// under the alias, its feedback under "{alias}Feedback") and their two
// matching `{name}Size` uniform names — regardless of whether the preset
// actually uses both forms anywhere.
func BuildAliasTable(passes []preset.PassConfig) AliasTable {
	table := AliasTable{
		TextureNames: make(map[string]TextureKey),
		SizeNames:    make(map[string]TextureKey),
	}
	for i, pass := range passes {
		if pass.Alias == "" {
			continue
		}
		outputKey := TextureKey{Semantic: semantics.TexPassOutput, Index: i}
		feedbackKey := TextureKey{Semantic: semantics.TexPassFeedback, Index: i}

		table.TextureNames[pass.Alias] = outputKey
		table.TextureNames[pass.Alias+"Feedback"] = feedbackKey
		table.SizeNames[pass.Alias+"Size"] = outputKey
		table.SizeNames[pass.Alias+"FeedbackSize"] = feedbackKey
	}
	return table
}
