package main

import (
	"flag"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"chessagent/internal/model"
	httpserver "chessagent/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 没有图形界面的机器上会失败，不管
}

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	webDir := flag.String("web", "./web", "directory with desktop index.html / js")
	mobileDir := flag.String("web-mobile", "", "directory with mobile assets (default: same as -web)")
	rankerPath := flag.String("ranker", "", "piece ranking model (.onnx or network .json)")
	valuerPath := flag.String("valuer", "", "favor bucket model (.onnx or network .json)")
	libPath := flag.String("lib", "", "path to the onnxruntime shared library")
	depth := flag.Int("depth", 3, "default search depth in plies")
	topN := flag.Int("topn", 4, "pieces expanded per node by the agent")
	noBrowser := flag.Bool("no-browser", false, "do not open a browser")
	flag.Parse()

	opts := httpserver.Options{Depth: *depth, TopN: *topN}
	if *rankerPath != "" && *valuerPath != "" {
		log.Printf("loading models ranker=%s valuer=%s", *rankerPath, *valuerPath)
		models, err := model.Open(*rankerPath, *valuerPath, *libPath)
		if err != nil {
			log.Fatalf("failed to load models: %v", err)
		}
		defer models.Close()
		opts.Ranker = models.Ranker
		opts.Valuer = models.Valuer
	}

	srv := httpserver.NewServer(httpserver.NewHandler(opts), *webDir, *mobileDir)
	log.Printf("listening on %s, serving static from %s, agent=%v", *addr, *webDir, srv.API().HasAgent())

	if !*noBrowser {
		// 延迟 100ms 打开浏览器，等服务器起来
		go func() {
			time.Sleep(100 * time.Millisecond)
			host := *addr
			if strings.HasPrefix(host, ":") {
				host = "127.0.0.1" + host
			}
			openBrowser("http://" + host)
		}()
	}

	if err := http.ListenAndServe(*addr, srv); err != nil {
		log.Fatal(err)
	}
}
