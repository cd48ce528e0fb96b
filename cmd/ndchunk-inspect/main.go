// Package main provides a command-line utility to inspect ndchunk dataset
// directories: global shape, chunk geometry, codec configuration, and
// which chunk files are present on disk versus filled by the dataset's
// fill value.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/scigolib/ndchunk"
)

func main() {
	chunkFlag := flag.String("chunk", "", "comma-separated chunk index to report presence/size on disk for, e.g. 1,0,2")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: ndchunk-inspect [flags] <dataset-dir>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	root := args[0]
	meta, err := ndchunk.ReadMetadata(root)
	if err != nil {
		log.Fatalf("reading metadata: %v", err)
	}

	layout := "A (flat files, no header, little-endian)"
	if !meta.LayoutA {
		layout = "B (nested directories, per-chunk header, big-endian)"
	}

	fmt.Printf("dataset:     %s\n", root)
	fmt.Printf("shape:       %v\n", meta.Shape)
	fmt.Printf("chunkShape:  %v\n", meta.Chunks)
	fmt.Printf("dtype:       %s\n", meta.Dtype)
	fmt.Printf("fillValue:   %s\n", meta.FillValue.String())
	fmt.Printf("codec:       %s (level=%d blocksize=%d shuffle=%d typesize=%d)\n",
		meta.Compressor.ID, meta.Compressor.Level, meta.Compressor.BlockSize,
		meta.Compressor.Shuffle, meta.Compressor.TypeSize)
	fmt.Printf("layout:      %s\n", layout)

	chunksPerDim := make([]int64, len(meta.Shape))
	numChunks := int64(1)
	for d := range meta.Shape {
		chunksPerDim[d] = ceilDiv(meta.Shape[d], meta.Chunks[d])
		numChunks *= chunksPerDim[d]
	}
	fmt.Printf("chunksPerDim: %v\n", chunksPerDim)
	fmt.Printf("numberOfChunks: %d\n", numChunks)

	if *chunkFlag != "" {
		id, err := parseChunkID(*chunkFlag)
		if err != nil {
			log.Fatalf("parsing -chunk: %v", err)
		}
		reportChunk(root, meta, id)
	}
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

func parseChunkID(s string) ([]int64, error) {
	var id []int64
	cur := int64(0)
	started := false
	for _, r := range s + "," {
		switch {
		case r >= '0' && r <= '9':
			cur = cur*10 + int64(r-'0')
			started = true
		case r == ',':
			if !started {
				return nil, fmt.Errorf("empty chunk index component in %q", s)
			}
			id = append(id, cur)
			cur, started = 0, false
		default:
			return nil, fmt.Errorf("invalid character %q in chunk index %q", r, s)
		}
	}
	return id, nil
}

// reportChunk prints whether chunk id's file exists on disk, using the
// layout's own filename rule so this tool never guesses at internal path
// construction.
func reportChunk(root string, meta ndchunk.Metadata, id []int64) {
	var path string
	if meta.LayoutA {
		path = joinLayoutA(root, id)
	} else {
		path = joinLayoutB(root, id)
	}

	info, err := os.Stat(path)
	switch {
	case err == nil:
		fmt.Printf("chunk %v: present, %d bytes on disk (%s)\n", id, info.Size(), path)
	case os.IsNotExist(err):
		fmt.Printf("chunk %v: absent -- reads as fill value %s (%s)\n", id, meta.FillValue.String(), path)
	default:
		log.Fatalf("stat chunk %v: %v", id, err)
	}
}

func joinLayoutA(root string, id []int64) string {
	parts := make([]string, len(id))
	for i, v := range id {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return filepath.Join(root, strings.Join(parts, "."))
}

func joinLayoutB(root string, id []int64) string {
	parts := make([]string, len(id)+1)
	parts[0] = root
	for i, v := range id {
		parts[i+1] = strconv.FormatInt(v, 10)
	}
	return filepath.Join(parts...)
}
