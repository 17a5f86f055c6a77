package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// parenRe 移除全形與半形括號內的補充說明，例：豆漿(大)
var parenRe = regexp.MustCompile(`（[^）]*）|\([^)]*\)`)

// normalizeRules 是文字正規化規則：同音/俗寫替換、贅詞、括號
type normalizeRules struct {
	aliases   map[string]string
	aliasKeys []string // 長字優先，避免短別名先吃掉長別名
	fillers   []string
}

func newNormalizeRules(aliases map[string]string, fillers []string) (normalizeRules, error) {
	// 替換結果不可以再是另一個別名 key，否則 Normalize 不冪等
	for from, to := range aliases {
		if from == to {
			return normalizeRules{}, fmt.Errorf("catalog: text alias %q maps to itself", from)
		}
		for other := range aliases {
			if strings.Contains(to, other) {
				return normalizeRules{}, fmt.Errorf("catalog: text alias %q -> %q re-triggers alias %q", from, to, other)
			}
		}
		for _, filler := range fillers {
			if strings.Contains(to, filler) {
				return normalizeRules{}, fmt.Errorf("catalog: text alias %q -> %q contains filler %q", from, to, filler)
			}
		}
	}
	return normalizeRules{
		aliases:   aliases,
		aliasKeys: sortedLongestFirst(mapKeys(aliases)),
		fillers:   sortedLongestFirst(append([]string(nil), fillers...)),
	}, nil
}

// Normalize 依固定順序整理一句話：
// 1) 同音/俗寫替換（長字優先） 2) 移除贅詞 3) 去掉括號補充 4) 再替換一次。
// 贅詞或括號拿掉後可能拼出新的俗寫（例：飯然後團 → 飯團），
// 所以最後再跑一輪替換，維持 Normalize(Normalize(x)) == Normalize(x)。
func (c *Catalog) Normalize(text string) string {
	t := c.applyAliases(strings.TrimSpace(text))

	for _, filler := range c.norm.fillers {
		t = strings.ReplaceAll(t, filler, "")
	}

	t = parenRe.ReplaceAllString(t, "")
	t = c.applyAliases(t)

	return strings.TrimSpace(t)
}

func (c *Catalog) applyAliases(t string) string {
	for _, from := range c.norm.aliasKeys {
		t = strings.ReplaceAll(t, from, c.norm.aliases[from])
	}
	return t
}

func contains(text, sub string) bool {
	return sub != "" && strings.Contains(text, sub)
}

func removeAll(text, sub string) string {
	if sub == "" {
		return text
	}
	return strings.ReplaceAll(text, sub, "")
}
