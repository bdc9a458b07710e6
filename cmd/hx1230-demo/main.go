package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/hx1230"
	"github.com/BeatGlow/hx1230/conn"
	"github.com/BeatGlow/hx1230/draw"
	"github.com/BeatGlow/hx1230/hx1230test"
	"github.com/BeatGlow/hx1230/pixel"
)

func main() {
	speed := physic.Frequency(hx1230.DefaultSPIConfig.SpeedHz) * physic.Hertz
	flag.Var(&speed, "speed", "Bus speed")
	busFlag := flag.String("bus", "periph", "Bus type (periph, spidev, bitbang or emulate)")
	spiFlag := flag.String("spi", "", "periph.io SPI port name (default: first available)")
	spiBusFlag := flag.Int("spi-bus", 0, "spidev bus")
	spiDeviceFlag := flag.Int("spi-dev", 0, "spidev device")
	csPinFlag := flag.String("cs", "", "Chip select GPIO pin (default: hardware chip select)")
	resetPinFlag := flag.String("reset", "", "Reset GPIO pin")
	blPinFlag := flag.String("bl", "", "Backlight GPIO pin")
	clkPinFlag := flag.String("clk", "GPIO11", "Clock GPIO pin for bitbang")
	mosiPinFlag := flag.String("mosi", "GPIO10", "Data GPIO pin for bitbang")
	contrastFlag := flag.Uint("contrast", 0, "Contrast level 0-31 (default: 30)")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	framesFlag := flag.Int("frames", 0, "Number of frames to draw (default: forever)")
	bmpFlag := flag.String("bmp", "", "Write the last emulated frame to this BMP file")
	fontFlag := flag.String("font", "basic", "Font (basic, gomono, tiny or a TrueType file)")
	flag.Parse()

	var rotation hx1230.Rotation
	switch *rotateFlag {
	case "", "no", "0":
		rotation = hx1230.NoRotation
	case "180", "flip":
		rotation = hx1230.Rotate180
	default:
		fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
	}
	fmt.Printf("using rotation: %s\n", rotation)

	text, err := textDrawer(*fontFlag)
	if err != nil {
		fatal(err)
	}

	var (
		c       hx1230.Conn
		panel   *hx1230test.Panel
		busType = strings.ToLower(*busFlag)
	)
	if busType != "emulate" || *resetPinFlag != "" || *blPinFlag != "" {
		if _, err = host.Init(); err != nil {
			fatal(err)
		}
	}
	var (
		reset     = pinByName(*resetPinFlag)
		backlight = pinByName(*blPinFlag)
	)
	switch busType {
	case "periph":
		c, err = hx1230.OpenSPI(&hx1230.SPIConfig{
			Port:    *spiFlag,
			SpeedHz: uint32(speed / physic.Hertz),
			CS:      pinByName(*csPinFlag),
		})
	case "spidev":
		c, err = openSPIDev(*spiBusFlag, *spiDeviceFlag, speed, pinByName(*csPinFlag))
	case "bitbang":
		var bus *conn.BitBang
		if bus, err = conn.NewBitBang(pinByName(*clkPinFlag), pinByName(*mosiPinFlag), speed); err == nil {
			cs := pinByName(*csPinFlag)
			if cs == nil {
				fatal(fmt.Errorf("bitbang needs a chip select pin"))
			}
			c = hx1230.NewConn(bus, cs)
		}
	case "emulate":
		panel = hx1230test.NewPanel(hx1230.Width, hx1230.Lines)
		c = hx1230.NewConn(panel, panel)
	default:
		err = fmt.Errorf("unsupported bus type %q", busType)
	}
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using connection: %s\n", c)

	config := &hx1230.Config{
		Rotation:  rotation,
		Contrast:  uint8(*contrastFlag),
		Reset:     reset,
		Backlight: backlight,
	}
	err = run(c, config, panel, text, *framesFlag, *bmpFlag)
	if cerr := c.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fatal(err)
	}
}

func run(c hx1230.Conn, config *hx1230.Config, panel *hx1230test.Panel, text func(draw.Image, image.Point, string), frames int, bmpName string) error {
	output, err := hx1230.Open(c, config)
	if err != nil {
		return err
	}
	fmt.Printf("using driver: %s\n", output)

	var (
		diameter int
		ticker   = time.NewTicker(100 * time.Millisecond)
		buf      = output.Buffer()
	)
	defer ticker.Stop()

	if frames == 0 {
		fmt.Println("hit control-c to stop...")
	}
	for frame := 0; frames == 0 || frame < frames; frame++ {
		buf.Clear()

		circle(buf, image.Pt(48, 40), (diameter+10)%80)
		circle(buf, image.Pt(20, 20), (diameter+0)%60)
		circle(buf, image.Pt(60, 20), (diameter+20)%60)
		circle(buf, image.Pt(80, 50), (diameter+30)%60)
		circle(buf, image.Pt(20, 60), (diameter+40)%60)

		buf.ClearLine(0, 0x00)
		buf.ClearLine(1, 0x00)
		text(buf, image.Pt(0, 12), fmt.Sprintf("Hello Go %d", diameter))

		if err = output.Refresh(); err != nil {
			return err
		}

		diameter++
		<-ticker.C
	}

	if panel != nil {
		if err = panel.Err(); err != nil {
			return err
		}
		if bmpName != "" {
			if err = writeBMP(bmpName, panel.Image()); err != nil {
				return err
			}
			fmt.Printf("wrote frame to %s\n", bmpName)
		}
	}

	return output.Halt()
}

// circle draws a circle with a 3 pixel wide stroke.
func circle(dst draw.Image, center image.Point, diameter int) {
	r := diameter / 2
	for _, radius := range []int{r - 1, r, r + 1} {
		draw.Circle(dst, center, radius, pixel.On)
	}
}

func textDrawer(name string) (func(draw.Image, image.Point, string), error) {
	switch name {
	case "", "basic":
		return func(dst draw.Image, pt image.Point, s string) {
			draw.Text(dst, pt, s, nil, pixel.On)
		}, nil
	case "tiny":
		return func(dst draw.Image, pt image.Point, s string) {
			draw.TinyText(dst, pt, s, nil, pixel.On)
		}, nil
	}

	var ttf []byte
	if name != "gomono" {
		var err error
		if ttf, err = os.ReadFile(name); err != nil {
			return nil, err
		}
	}
	f, err := draw.NewTrueType(ttf, 12)
	if err != nil {
		return nil, err
	}
	return func(dst draw.Image, pt image.Point, s string) {
		_, _ = f.DrawString(dst, pt, s, pixel.On)
	}, nil
}

func openSPIDev(bus, device int, speed physic.Frequency, csPin gpio.PinOut) (hx1230.Conn, error) {
	c, err := conn.OpenSPI(bus, device)
	if err != nil {
		return nil, err
	}
	if err = c.SetMode(conn.SPIMode0); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SetMaxSpeed(int(speed / physic.Hertz)); err != nil {
		_ = c.Close()
		return nil, err
	}

	var cs hx1230.SelectPin
	if csPin != nil {
		if err = csPin.Out(gpio.High); err != nil {
			_ = c.Close()
			return nil, err
		}
		cs = csPin
	}
	return hx1230.NewConn(c, cs), nil
}

func pinByName(name string) gpio.PinOut {
	if name == "" {
		return nil
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		fatal(fmt.Errorf("unknown GPIO pin %q", name))
	}
	return pin
}

func writeBMP(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = bmp.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
