package main

import (
	"flag"
	"fmt"
	"log"

	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/hx1230"
	"github.com/BeatGlow/hx1230/conn"
)

func main() {
	var speed physic.Frequency
	flag.Var(&speed, "speed", "Bus speed (default: keep current)")
	busFlag := flag.Int("bus", 0, "SPI bus")
	deviceFlag := flag.Int("device", 0, "SPI device")
	initFlag := flag.Bool("init", false, "Initialize the panel, using the hardware chip select")
	flag.Parse()

	c, err := conn.OpenSPI(*busFlag, *deviceFlag)
	if err != nil {
		log.Fatalln("open failed: ", err)
	}
	fmt.Println("connected using", c)

	if speed > 0 {
		if err = c.SetMaxSpeed(int(speed / physic.Hertz)); err != nil {
			log.Fatalln("set speed failed: ", err)
		}
		fmt.Println("changed speed:", c)
	}

	if *initFlag {
		if err = c.SetMode(conn.SPIMode0); err != nil {
			log.Fatalln("set mode failed: ", err)
		}
		if err = hx1230.NewSPI(c, nil).Initialize(nil); err != nil {
			log.Fatalln("init failed: ", err)
		}
		fmt.Println("panel initialized")
	}

	if err = c.Close(); err != nil {
		log.Fatalln("close failed: ", err)
	}
}
