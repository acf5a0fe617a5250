package main

import (
	"flag"
	"log"
	"time"

	"github.com/zainjo/insight-dashboard/backend/internal/chunker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	in := flag.String("in", "data/Zainjo.json", "源文件路径 (Zainjo 导出 JSON)")
	out := flag.String("out", "data/zainjo-chunks", "分块输出目录")
	size := flag.Int("chunk-size", chunker.DefaultChunkSize, "每个分块的最大会话数")

	flag.Parse()

	start := time.Now()
	res, err := chunker.Split(*in, *out, chunker.Options{ChunkSize: *size})
	if err != nil {
		log.Fatalf("chunking failed: %v", err)
	}

	log.Printf("chunking completed in %s", time.Since(start).Round(time.Millisecond))
	log.Printf("chatters: %d (skipped %d), chunks: %d -> %s", res.TotalChatters, res.Skipped, res.TotalChunks, *out)
}
