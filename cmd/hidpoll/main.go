// hidpoll lists every attached HID device, then opens the first OSVR HDK
// tracker it finds (vendor 0x1532, product 0x0b00) and polls it for input
// reports for half a second, printing each report's size plus its version
// and sequence bytes. Exits nonzero when no tracker is attached or a read
// fails.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/mdehoog/hidapi"
)

const (
	trackerVendorID  = 0x1532
	trackerProductID = 0x0b00

	pollWindow = 500 * time.Millisecond
)

func main() {
	os.Exit(run())
}

func run() int {
	lib, err := hidapi.OpenLibrary()
	if err != nil {
		log.Error("Could not initialize HID library", "err", err)
		return 1
	}
	defer lib.Close()

	// The descriptor chain dies with the enumeration, so the path of the
	// tracker is copied out before closing it.
	enum := lib.Enumerate(hidapi.VendorIDAny, hidapi.ProductIDAny)
	var trackerPath string
	for dev := range enum.All() {
		fmt.Printf("Device Found\n  type: %04x %04x\n  path: %s\n  serial_number: %s\n",
			dev.VendorID, dev.ProductID, dev.Path, dev.Serial)
		fmt.Printf("  Manufacturer: %s\n", dev.Manufacturer)
		fmt.Printf("  Product:      %s\n", dev.Product)
		fmt.Printf("  Release:      %x\n", dev.Release)
		fmt.Printf("  Interface:    %d\n\n", dev.Interface)
		if dev.VendorID == trackerVendorID && dev.ProductID == trackerProductID && trackerPath == "" {
			fmt.Printf("  *** This is an HDK tracker! ***\n\n")
			trackerPath = dev.Path
		}
	}
	enum.Close()

	if trackerPath == "" {
		log.Error("Could not find an HDK tracker",
			"vendor", fmt.Sprintf("%04x", trackerVendorID),
			"product", fmt.Sprintf("%04x", trackerProductID))
		return 1
	}

	dev := lib.OpenDevicePath(trackerPath)
	defer dev.Close()
	if !dev.IsValid() {
		log.Error("Could not open HDK tracker", "path", trackerPath)
		return 1
	}
	if err := dev.SetBlocking(true); err != nil {
		log.Warn("Could not enable blocking mode", "err", err)
	}

	deadline := time.Now().Add(pollWindow)
	for time.Now().Before(deadline) {
		report, err := dev.Read(0)
		if err != nil {
			log.Error("Read failed", "err", err)
			return 1
		}
		if len(report) == 0 {
			// Nothing pending.
			continue
		}
		var version, sequence byte
		if len(report) >= 2 {
			version, sequence = report[0], report[1]
		}
		fmt.Printf("Report: %d bytes, version %d, sequence %d\n", len(report), version, sequence)
	}
	return 0
}
