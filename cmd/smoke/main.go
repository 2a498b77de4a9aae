// Command smoke starts the renderer in-process, sends a sample resume through
// /render and /preview and writes both PDFs to the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"time"

	httpadapter "resume-renderer/internal/adapter/http"
	"resume-renderer/internal/logging"
	"resume-renderer/internal/metrics"
	"resume-renderer/internal/model"
	"resume-renderer/internal/preview"
	"resume-renderer/internal/usecase"
	"resume-renderer/pkg/client"
	"resume-renderer/pkg/infrastructure"
)

const sampleResume = `\documentclass{article}
\definecolor{accent}{HTML}{1F6FEB}
\begin{document}
% header
\section*{Summary}
Operations lead for LLM evaluation pipelines. \textbf{Led 3 launches} across
\emph{two} regions and cut incident response time by half.
\section{Experience}
\textit{Velocity Pod} -- Staff engineer, 2021--2024.
\end{document}
`

func main() {
	out := flag.String("out", filepath.Join("resume-data", "generated"), "directory for the rendered PDFs")
	flag.Parse()

	logger := logging.New(os.Stderr, "debug", "text")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("listen: %v", err)
	}

	m := metrics.New()
	gen := preview.NewGenerator(preview.DefaultTokens())
	compiler := infrastructure.NewLatexmkCompiler("latexmk", 20*time.Second, "")
	svc := usecase.NewRenderService(compiler, nil, nil, gen, usecase.RenderOptions{FallbackPreview: true, Logger: logger, Metrics: m})
	h := httpadapter.NewHandler(svc, usecase.NewPreviewScheduler(gen, 0), nil, logger)
	app := httpadapter.NewApp(h, httpadapter.RouterConfig{Metrics: m, Logger: logger})
	go func() {
		if err := app.Listener(ln); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()
	defer app.Shutdown()

	c := client.NewClient()
	c.BaseURL = "http://" + ln.Addr().String()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("create out dir: %v", err)
	}
	req := &model.RenderRequest{
		LatexSource:  sampleResume,
		TemplateName: "smoke",
		Tokens:       &preview.Tokens{Candidate: "Test User", Role: "Engineer"},
	}
	for name, call := range map[string]func(context.Context, *model.RenderRequest) (*model.RenderResponse, error){
		"render":  c.Render,
		"preview": c.Preview,
	} {
		resp, err := call(ctx, req)
		if err != nil {
			log.Fatalf("%s failed: %v", name, err)
		}
		pdf, err := client.DecodePDF(resp.PDFDataURL)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		path := filepath.Join(*out, "smoke_"+name+".pdf")
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		fmt.Printf("%s: wrote %s (%d bytes)\n  excerpt: %s\n  log: %s\n", name, path, len(pdf), resp.Excerpt, resp.Log)
	}
}
