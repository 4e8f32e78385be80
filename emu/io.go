package emu

// Input holds one standard controller's buttons for a frame.
type Input struct {
	A      bool
	B      bool
	Select bool
	Start  bool
	Up     bool
	Down   bool
	Left   bool
	Right  bool
}

// Bits returns the buttons in the order the controller shifts them out:
// A, B, Select, Start, Up, Down, Left, Right (bit 0 first).
func (in Input) Bits() uint8 {
	var b uint8
	for i, pressed := range [8]bool{in.A, in.B, in.Select, in.Start, in.Up, in.Down, in.Left, in.Right} {
		if pressed {
			b |= 1 << i
		}
	}
	return b
}

// Controller is a standard pad behind $4016/$4017: a parallel-in
// shift register latched while strobe is high.
type Controller struct {
	buttons uint8
	index   uint8
	strobe  bool
}

// Set replaces the buttons that the next latch will capture.
func (c *Controller) Set(in Input) {
	c.buttons = in.Bits()
}

// Write handles the strobe bit written to $4016.
func (c *Controller) Write(val uint8) {
	c.strobe = val&0x01 != 0
	if c.strobe {
		c.index = 0
	}
}

// Read shifts out the next button. After eight reads an official pad returns 1.
func (c *Controller) Read() uint8 {
	var v uint8 = 1
	if c.index < 8 {
		v = (c.buttons >> c.index) & 0x01
	}
	if c.strobe {
		c.index = 0
	} else if c.index < 8 {
		c.index++
	}
	return v
}
