// Command simulate drives a synthetic tagging session against a running
// YouCoder service: it activates a video, then fires start/label/stop
// sequences the way a user hammering the overlay buttons would.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

var (
	teams   = []string{"Home", "Away"}
	actions = []string{"Pass", "Shoot", "Tackle", "Scrum"}
	labels  = []string{"Good", "Poor", "Zone - Left", "Zone - Right", "Outcome - Retained"}
)

func main() {
	addr := flag.String("addr", "http://localhost:9090", "service base URL")
	videoID := flag.String("video", "", "video id to tag (random when empty)")
	count := flag.Int("count", 50, "number of start/stop sequences")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if *videoID == "" {
		*videoID = "sim-" + uuid.NewString()
	}
	rng := rand.New(rand.NewSource(*seed))
	client := &http.Client{Timeout: 5 * time.Second}

	if err := post(client, http.MethodPut, *addr+"/video", map[string]any{"video_id": *videoID}); err != nil {
		fmt.Fprintln(os.Stderr, "activate video:", err)
		os.Exit(1)
	}

	position := 0.0
	for i := 0; i < *count; i++ {
		team := teams[rng.Intn(len(teams))]
		action := actions[rng.Intn(len(actions))]

		position += rng.Float64() * 3
		body := map[string]any{"team": team, "action": action, "position_seconds": position}
		if err := post(client, http.MethodPost, *addr+"/actions/start", body); err != nil {
			fmt.Fprintln(os.Stderr, "start:", err)
			os.Exit(1)
		}

		for rng.Float64() < 0.4 {
			label := labels[rng.Intn(len(labels))]
			labelBody := map[string]any{"team": team, "action": action, "label": label}
			if err := post(client, http.MethodPost, *addr+"/actions/labels", labelBody); err != nil {
				fmt.Fprintln(os.Stderr, "label:", err)
				os.Exit(1)
			}
		}

		position += rng.Float64() * 10
		body["position_seconds"] = position
		if err := post(client, http.MethodPost, *addr+"/actions/stop", body); err != nil {
			fmt.Fprintln(os.Stderr, "stop:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("tagged %d sequences on video %s\n", *count, *videoID)
}

func post(client *http.Client, method, url string, body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: %s", method, url, resp.Status)
	}
	return nil
}
