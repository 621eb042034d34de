package analyser

import (
	"crypto/md5"
	"embed"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/ludo-technologies/reposcan/domain"
	"github.com/ludo-technologies/reposcan/internal/constants"
)

//go:embed data/licenses/*.txt
var licenseData embed.FS

// Signature parameters for license fingerprinting
const (
	// maxSignatureTokens is the maximum number of sentence tokens per signature
	maxSignatureTokens = 20

	// tokenSize is the number of hash characters kept from each end of a token
	tokenSize = 4

	// recognitionThreshold is the highest signature distance still reported
	// as a recognized license
	recognitionThreshold = 10
)

var (
	crRe       = regexp.MustCompile(`\r`)
	blankRunRe = regexp.MustCompile(`\n(\s*\n)+`)
	spaceRunRe = regexp.MustCompile(`\s+`)
	nonWordRe  = regexp.MustCompile(`[^\w. ]`)
	sentenceRe = regexp.MustCompile(`\.+`)
)

// licenseSignature fingerprints a license text: sentences are normalized,
// hashed, and reduced to short tokens. Paragraph breaks count as sentence
// boundaries so layout differences do not change the signature.
func licenseSignature(text string, maxTokens int) []string {
	text = crRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, ".")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = nonWordRe.ReplaceAllString(text, "")

	var tokens []string
	for _, row := range sentenceRe.Split(text, -1) {
		row = strings.ToLower(strings.TrimSpace(row))
		if row == "" {
			continue
		}

		sum := md5.Sum([]byte(row))
		token := hex.EncodeToString(sum[:])
		tokens = append(tokens, token[:tokenSize]+token[len(token)-tokenSize:])

		if maxTokens > 0 && len(tokens) == maxTokens {
			break
		}
	}
	return tokens
}

// signatures holds the reduced signature of every bundled license text,
// built once per process.
var signatures = sync.OnceValue(func() map[string][]string {
	sigs := make(map[string][]string)

	entries, err := licenseData.ReadDir("data/licenses")
	if err != nil {
		return sigs
	}
	for _, entry := range entries {
		data, err := licenseData.ReadFile("data/licenses/" + entry.Name())
		if err != nil {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".txt")
		sigs[id] = licenseSignature(string(data), maxSignatureTokens)
	}
	return sigs
})

// LicenseText returns the bundled reference text for a license id
func LicenseText(id string) (string, error) {
	data, err := licenseData.ReadFile("data/licenses/" + id + ".txt")
	if err != nil {
		return "", fmt.Errorf("unknown license id %q: %w", id, err)
	}
	return string(data), nil
}

// findLicense matches a text against the bundled signatures and returns the
// closest license ids with their distance score. Ties return multiple ids.
func findLicense(text string) ([]string, int) {
	sign := make(map[string]bool)
	for _, token := range licenseSignature(text, maxSignatureTokens) {
		sign[token] = true
	}

	var ids []string
	minScore := -1

	for id, tokens := range signatures() {
		tokenSet := make(map[string]bool, len(tokens))
		for _, token := range tokens {
			tokenSet[token] = true
		}

		score := 0
		for token := range tokenSet {
			if !sign[token] {
				score++
			}
		}
		for token := range sign {
			if !tokenSet[token] {
				score++
			}
		}

		switch {
		case minScore >= 0 && score == minScore:
			ids = append(ids, id)
		case minScore < 0 || score < minScore:
			minScore = score
			ids = []string{id}
		}
	}

	sort.Strings(ids)
	return ids, minScore
}

// recognized reports whether a match is close enough to name a license. The
// distance must stay under the fixed threshold and under the size of the
// matched signature itself, so a short unrelated text cannot pass merely
// because the reference signature is small.
func recognized(ids []string, score int) bool {
	if len(ids) == 0 || score < 0 || score > recognitionThreshold {
		return false
	}
	tokens := signatures()[ids[0]]
	set := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		set[token] = true
	}
	return score < len(set)
}

// License analyses license files by signature fingerprinting against the
// bundled license texts.
type License struct{}

// NewLicense creates the license analyser
func NewLicense() *License {
	return &License{}
}

// Type returns the analyser category
func (a *License) Type() domain.AnalyserType {
	return domain.TypeLicense
}

// Name returns the analyser name
func (a *License) Name() string {
	return "License"
}

// Includes returns the license file patterns
func (a *License) Includes(root string) []string {
	return []string{
		"license",
		"license.md",
		"license.txt",
		"copying",
	}
}

// Excludes returns no patterns
func (a *License) Excludes(root string) []string {
	return nil
}

// AnalyseFile fingerprints one license file
func (a *License) AnalyseFile(root, rel string, reporter *domain.Reporter) (domain.FileResult, error) {
	data, err := readFile(root, rel)
	if err != nil {
		return nil, err
	}

	ids, score := findLicense(string(data))
	reporter.AddMetadata(constants.MetadataLicenseFile, rel, rel)

	if recognized(ids, score) {
		reporter.AddNotice("License file exists.", rel)
		if len(ids) == 1 {
			reporter.AddMetadata(constants.MetadataLicense, ids[0], rel)
		}
	} else {
		reporter.AddWarning("License file cannot be recognized.", rel)
	}

	return domain.FileResult{
		"ids":   ids,
		"score": score,
	}, nil
}
