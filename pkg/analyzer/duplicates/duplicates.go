// Package duplicates finds near-identical code blocks using MinHash
// signatures with banded locality-sensitive hashing for candidate
// filtering, so pair discovery stays near-linear in block count.
package duplicates

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/sourceprism/prism/pkg/config"
	"github.com/sourceprism/prism/pkg/models"
)

const (
	numBands    = 16
	shingleSize = 3
)

// Detector finds duplicate code blocks across a file set.
type Detector struct {
	minLines  int
	threshold float64
	numHashes int
}

// New creates a detector with the given thresholds.
func New(cfg config.DuplicateConfig) *Detector {
	return &Detector{
		minLines:  cfg.MinLines,
		threshold: cfg.Threshold,
		numHashes: cfg.NumHashes,
	}
}

// block is one candidate window of normalized source lines.
type block struct {
	file      string
	startLine uint32 // 1-based
	endLine   uint32
	signature []uint64
}

type pair struct {
	a, b       int
	similarity float64
}

// Analyze detects duplicate blocks across files and returns extraction
// suggestions sorted by similarity. Unreadable files are skipped.
func (d *Detector) Analyze(files []string) (*models.DuplicateAnalysis, error) {
	var blocks []block
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		blocks = append(blocks, d.extractBlocks(path, string(data))...)
	}

	pairs := d.findPairs(blocks)

	// Ties are broken on both sides of the pair so the greedy selection
	// below sees the same order on every run.
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].similarity != pairs[j].similarity {
			return pairs[i].similarity > pairs[j].similarity
		}
		ai, aj := blocks[pairs[i].a], blocks[pairs[j].a]
		if ai.file != aj.file {
			return ai.file < aj.file
		}
		if ai.startLine != aj.startLine {
			return ai.startLine < aj.startLine
		}
		bi, bj := blocks[pairs[i].b], blocks[pairs[j].b]
		if bi.file != bj.file {
			return bi.file < bj.file
		}
		return bi.startLine < bj.startLine
	})

	analysis := &models.DuplicateAnalysis{
		Suggestions:  make([]models.DuplicateSuggestion, 0, len(pairs)),
		FilesScanned: len(files),
		MinLines:     d.minLines,
		Threshold:    d.threshold,
	}

	// Greedy selection: once a region is reported, overlapping windows of
	// the same clone add noise, not information.
	taken := make(map[string][]block)
	for _, p := range pairs {
		a, b := blocks[p.a], blocks[p.b]
		if overlapsAny(taken[a.file], a) || overlapsAny(taken[b.file], b) {
			continue
		}
		taken[a.file] = append(taken[a.file], a)
		taken[b.file] = append(taken[b.file], b)

		lines := int(a.endLine - a.startLine + 1)
		analysis.Suggestions = append(analysis.Suggestions, models.DuplicateSuggestion{
			BlockA:     models.DuplicateBlock{FilePath: a.file, StartLine: a.startLine, EndLine: a.endLine},
			BlockB:     models.DuplicateBlock{FilePath: b.file, StartLine: b.startLine, EndLine: b.endLine},
			Lines:      lines,
			Similarity: p.similarity,
			Suggestion: suggestion(a, b, lines),
		})
	}

	return analysis, nil
}

// extractBlocks slides a window of minLines significant lines over the
// file, stepping by half a window so clone boundaries between steps are
// still covered by an overlapping window.
func (d *Detector) extractBlocks(path, content string) []block {
	type srcLine struct {
		text   string
		number uint32
	}

	var lines []srcLine
	for i, raw := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || isComment(trimmed) {
			continue
		}
		lines = append(lines, srcLine{text: trimmed, number: uint32(i + 1)})
	}
	if len(lines) < d.minLines {
		return nil
	}

	step := d.minLines / 2
	if step < 1 {
		step = 1
	}

	var blocks []block
	for start := 0; start+d.minLines <= len(lines); start += step {
		window := lines[start : start+d.minLines]
		texts := make([]string, len(window))
		for i, l := range window {
			texts[i] = l.text
		}
		blocks = append(blocks, block{
			file:      path,
			startLine: window[0].number,
			endLine:   window[len(window)-1].number,
			signature: d.minHash(texts),
		})
	}
	return blocks
}

// minHash builds a signature over line shingles. Each hash slot keeps the
// minimum seed-mixed shingle hash, so the fraction of matching slots
// between two signatures estimates Jaccard similarity of the shingle sets.
func (d *Detector) minHash(lines []string) []uint64 {
	shingles := make([]uint64, 0, len(lines))
	if len(lines) < shingleSize {
		shingles = append(shingles, xxhash.Sum64String(strings.Join(lines, "\n")))
	} else {
		for i := 0; i+shingleSize <= len(lines); i++ {
			shingles = append(shingles, xxhash.Sum64String(strings.Join(lines[i:i+shingleSize], "\n")))
		}
	}

	sig := make([]uint64, d.numHashes)
	for i := range sig {
		sig[i] = ^uint64(0)
	}
	for _, sh := range shingles {
		for i := range sig {
			if h := mix(sh, uint64(i)); h < sig[i] {
				sig[i] = h
			}
		}
	}
	return sig
}

// findPairs buckets signature bands and verifies candidates that collide
// in any band against the similarity threshold.
func (d *Detector) findPairs(blocks []block) []pair {
	rowsPerBand := d.numHashes / numBands
	if rowsPerBand < 1 {
		rowsPerBand = 1
	}

	candidates := make(map[uint64]struct{})
	for band := 0; band < numBands; band++ {
		start := band * rowsPerBand
		if start >= d.numHashes {
			break
		}
		end := start + rowsPerBand
		if end > d.numHashes {
			end = d.numHashes
		}

		buckets := make(map[uint64][]int)
		for idx, b := range blocks {
			key := hashBand(b.signature[start:end], uint64(band))
			buckets[key] = append(buckets[key], idx)
		}
		for _, bucket := range buckets {
			for i := 0; i < len(bucket); i++ {
				for j := i + 1; j < len(bucket); j++ {
					candidates[uint64(bucket[i])<<32|uint64(bucket[j])] = struct{}{}
				}
			}
		}
	}

	var pairs []pair
	for key := range candidates {
		i, j := int(key>>32), int(key&0xFFFFFFFF)
		a, b := blocks[i], blocks[j]
		if a.file == b.file && a.startLine <= b.endLine && b.startLine <= a.endLine {
			continue
		}
		if sim := similarity(a.signature, b.signature); sim >= d.threshold {
			pairs = append(pairs, pair{a: i, b: j, similarity: sim})
		}
	}
	return pairs
}

func similarity(a, b []uint64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	matches := 0
	for i := range a {
		if a[i] == b[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(a))
}

// hashBand folds one band of the signature with FNV-1a style combining,
// avoiding allocations in the hot bucketing loop.
func hashBand(values []uint64, seed uint64) uint64 {
	const fnvPrime = 0x00000100000001B3
	h := seed ^ 0xcbf29ce484222325
	for _, v := range values {
		h ^= v
		h *= fnvPrime
	}
	return h
}

// mix combines a shingle hash with a seed using murmur-style finalization.
func mix(value, seed uint64) uint64 {
	h := value ^ seed
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "//") ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "/*") ||
		strings.HasPrefix(line, "*") ||
		strings.HasPrefix(line, "*/")
}

func overlapsAny(existing []block, b block) bool {
	for _, e := range existing {
		if b.startLine <= e.endLine && e.startLine <= b.endLine {
			return true
		}
	}
	return false
}

func suggestion(a, b block, lines int) string {
	if a.file == b.file {
		return fmt.Sprintf("Extract the duplicated %d-line block into a shared helper function.", lines)
	}
	return fmt.Sprintf("Extract the duplicated %d-line block into a function shared by both files.", lines)
}
