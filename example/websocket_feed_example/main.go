package main

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/builder"
	"nhooyr.io/websocket"
)

const device = "BLEN:LI21:265:AIMAX"

func sample(k int) float64 {
	t := float64(k) / 120
	return math.Sin(2*math.Pi*7*t) + 0.2*math.Sin(2*math.Pi*31*t)
}

// gateway streams a 7Hz oscillation sampled at 120Hz as JSON events.
func gateway(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer c.Close(websocket.StatusNormalClosure, "done")

	ctx := r.Context()
	t0 := time.Now()
	history := make([]float64, 256)
	for i := range history {
		history[i] = sample(i - len(history) + 1)
	}
	first, _ := builder.EncodeEvents(
		builder.Event{Kind: builder.EventRateChange, Rate: builder.Rate120Hz},
		builder.Event{
			Kind:     builder.EventHistorySnapshot,
			Device:   device,
			Snapshot: &builder.HistorySnapshot{Values: history, Timestamp: t0},
		},
	)
	if err := c.Write(ctx, websocket.MessageText, first); err != nil {
		return
	}
	for k := 1; k <= 480; k++ {
		ts := t0.Add(time.Duration(k) * time.Second / 120)
		v := sample(k)
		msg, _ := builder.EncodeEvents(builder.Event{
			Kind:   builder.EventValueUpdate,
			Device: device,
			Update: &builder.ValueUpdate{Value: v, Timestamp: ts},
		})
		if err := c.Write(ctx, websocket.MessageText, msg); err != nil {
			return
		}
		if k%40 == 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
	defer cancel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		fmt.Printf("listen: %v\n", err)
		return
	}
	srv := &http.Server{Handler: http.HandlerFunc(gateway)}
	go srv.Serve(ln)
	defer srv.Close()

	logger := builder.NewLogger(builder.LoggerWithLevel("warn"))
	sensor := builder.NewSensor(
		builder.SensorWithOnStartFunc(func(c builder.ComponentMetadata) {
			fmt.Printf("%s %s connected\n", c.Type, c.Name)
		}),
		builder.SensorWithOnStopFunc(func(c builder.ComponentMetadata) {
			fmt.Printf("%s %s closed\n", c.Type, c.Name)
		}),
	)

	src := builder.NewWebSocketEventSource(ctx,
		builder.WebSocketSourceWithURL("ws://"+ln.Addr().String()+"/events"),
		builder.WebSocketSourceWithReconnect(false, 0),
		builder.WebSocketSourceWithLogger(logger),
		builder.WebSocketSourceWithSensor(sensor),
		builder.WebSocketSourceWithComponentMetadata("gateway", "ws-1"),
	)

	session := builder.NewSession(
		builder.SessionWithMode(builder.ModeSpectrum),
		builder.SessionWithNumPoints(256),
		builder.SessionWithLogger(logger),
	)
	if err := session.Arm(device, ""); err != nil {
		fmt.Printf("arm: %v\n", err)
		return
	}

	var last builder.Frame
	runner := builder.NewRunner(session,
		builder.RunnerWithSource(src),
		builder.RunnerWithPublisher(builder.FramePublisherFunc(func(_ context.Context, f builder.Frame) error {
			last = f
			return nil
		})),
		builder.RunnerWithRefreshInterval(250*time.Millisecond),
		builder.RunnerWithLogger(logger),
	)
	if err := runner.Start(ctx); err != nil {
		fmt.Printf("start: %v\n", err)
		return
	}
	<-ctx.Done()
	_ = runner.Stop()

	fmt.Printf("%s  frame #%d  status=%q\n", last.Title, last.Sequence, last.Status)
	peak, at := 0.0, 0.0
	for i, m := range last.Spectrum.Magnitudes {
		if i > 0 && m > peak {
			peak, at = m, last.Spectrum.Frequencies[i]
		}
	}
	fmt.Printf("dominant component: %.1f Hz (magnitude %.3f)\n", at, peak)
}
