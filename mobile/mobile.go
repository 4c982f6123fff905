package mobile

import (
	"log"
	"net/http"

	"chessagent/internal/model"
	httpserver "chessagent/internal/server/http"
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// rankerPath, valuerPath: extracted .onnx models, empty runs exact search only
// libPath: physical path to the libonnxruntime.so
// port: port to listen on, e.g. "2888"
func StartServer(webDir, rankerPath, valuerPath, libPath, port string) {
	opts := httpserver.Options{Depth: 3}
	if rankerPath != "" && valuerPath != "" {
		models, err := model.Open(rankerPath, valuerPath, libPath)
		if err != nil {
			log.Printf("Failed to load models: %v", err)
		} else {
			opts.Ranker = models.Ranker
			opts.Valuer = models.Valuer
		}
	}

	srv := httpserver.NewServer(httpserver.NewHandler(opts), webDir, webDir)

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, srv); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
