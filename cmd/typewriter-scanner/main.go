// Command typewriter-scanner polls typewriter key switches over GPIO and
// emits one byte per press on a serial link.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fenwick/typewriter-scanner/internal/gpio"
	"github.com/fenwick/typewriter-scanner/internal/mqtt"
	"github.com/fenwick/typewriter-scanner/internal/scan"
	"github.com/fenwick/typewriter-scanner/internal/serial"
	"github.com/fenwick/typewriter-scanner/internal/status"
	"github.com/fenwick/typewriter-scanner/internal/web"
)

// readyMessage is written to the serial link exactly once at startup.
// Human-readable only; consumers treat it as noise before the first key.
const readyMessage = "typewriter ready"

func main() {
	device := flag.String("device", "/dev/ttyUSB0", `Serial device for key output ("-" for stdout)`)
	baud := flag.Int("baud", 9600, "Serial baud rate")
	format := flag.String("format", "raw", `Serial format: "raw" (one byte per press) or "verbose" (one line per press)`)
	poll := flag.Duration("poll", 5*time.Millisecond, "GPIO polling interval")
	holdOff := flag.Duration("holdoff", time.Second, "Hold-off after each emission (0 to disable)")
	strategy := flag.String("strategy", "stall", `Hold-off strategy: "stall" (pause all scanning) or "per-key"`)
	chip := flag.String("chip", gpio.DefaultChip, "GPIO character device")
	broker := flag.String("broker", "off", `MQTT broker address ("off" to disable the mirror)`)
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")
	printState := flag.Bool("print-state", false, "Print current key levels and exit")

	flag.Parse()

	f, err := parseFormat(*format)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	strat, err := parseStrategy(*strategy)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(*device, *baud, f, *poll, *holdOff, strat, *chip, *broker, *heartbeat, *printState, *httpAddr); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func parseFormat(s string) (serial.Format, error) {
	switch serial.Format(s) {
	case serial.FormatRaw, serial.FormatVerbose:
		return serial.Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want raw or verbose)", s)
}

func parseStrategy(s string) (scan.Strategy, error) {
	switch scan.Strategy(s) {
	case scan.StrategyStall, scan.StrategyPerKey:
		return scan.Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q (want stall or per-key)", s)
}

func run(device string, baud int, format serial.Format, poll, holdOff time.Duration, strategy scan.Strategy, chip, broker string, heartbeat time.Duration, printState bool, httpAddr string) error {
	layout := scan.DefaultLayout()

	// Initialize GPIO
	reader, err := gpio.NewRealReader(chip, layout.Lines())
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer reader.Close()

	// Print state mode
	if printState {
		return printLevels(os.Stdout, reader, layout)
	}

	// Initialize serial output
	emitter, err := openEmitter(device, baud, format)
	if err != nil {
		return fmt.Errorf("open serial: %w", err)
	}
	defer emitter.Close()

	// Initialize the MQTT mirror (off by default)
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if broker == "" || broker == "off" {
		noop := mqtt.NewNoopPublisher()
		publisher, mqttStatus = noop, noop
		broker = "" // status reports the mirror as disabled
	} else {
		real, err := mqtt.NewRealPublisher(broker)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		publisher, mqttStatus = real, real
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so a snapshot is available)
	tracker := status.NewTracker(time.Now(), layout, status.Config{
		Device:      device,
		Baud:        baud,
		Format:      string(format),
		PollMs:      poll.Milliseconds(),
		HoldoffMs:   holdOff.Milliseconds(),
		Strategy:    string(strategy),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPAddr:    httpAddr,
	})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: device=%s baud=%d format=%s poll=%v holdoff=%v strategy=%s",
		device, baud, format, poll, holdOff, strategy)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(reader, emitter, publisher, mqttStatus, tracker, layout, strategy, holdOff, heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(reader gpio.Reader, emitter serial.Emitter, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, layout scan.Layout, strategy scan.Strategy, holdOff, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	scanner := scan.NewScanner(layout, strategy, holdOff, startTime)

	// Readiness line goes out exactly once, before any key byte.
	if err := emitter.Announce(readyMessage); err != nil {
		log.Printf("announce error: %v", err)
		if tracker != nil {
			tracker.RecordSerialError()
		}
	}

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			}
			return nil

		case <-tick:
			t := now()
			pressed, err := reader.Read()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				if tracker != nil {
					tracker.RecordGPIOError()
				}
				continue
			}

			events := scanner.Process(scan.Sample{Pressed: pressed, Time: t})

			for _, ev := range events {
				log.Printf("key: %q (pin %s)", ev.Symbol, ev.Pin)
				if err := emitter.EmitKey(ev); err != nil {
					// The byte is lost; scanning continues.
					log.Printf("serial write error: %v", err)
					if tracker != nil {
						tracker.RecordSerialError()
					}
				}
				if err := publisher.PublishKey(ev); err != nil {
					log.Printf("publish error: %v", err)
				}
				if tracker != nil {
					tracker.RecordPress(ev)
				}
			}

			// Check for heartbeat
			if hb := scanner.CheckHeartbeat(t, heartbeat); hb != nil {
				log.Printf("heartbeat: uptime=%v presses=%d", hb.Uptime, hb.Counts.Total)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hb.Timestamp,
					Event:     "HEARTBEAT",
					Heartbeat: mqtt.HeartbeatFromCounts(hb.Uptime, hb.Counts, layout),
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					tracker.Update(pressed, scanner.Counts())
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers. Uses the raw sweep,
			// so levels stay live even while emission is held off.
			if tracker != nil {
				tracker.Update(pressed, scanner.Counts())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

func openEmitter(device string, baud int, format serial.Format) (serial.Emitter, error) {
	if device == "-" {
		return serial.NewWriterEmitter(os.Stdout, format), nil
	}
	return serial.NewPortEmitter(device, baud, format)
}

// printLevels dumps one line per channel: pin, symbol, level.
func printLevels(w io.Writer, reader gpio.Reader, layout scan.Layout) error {
	pressed, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read gpio: %w", err)
	}
	for i, ch := range layout {
		fmt.Fprintf(w, "%-3s %c %s\n", ch.Pin, ch.Symbol, scan.LevelFor(pressed[i]))
	}
	return nil
}
