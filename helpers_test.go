package railz

import (
	"fmt"
)

const (
	hondaMark  = "Honda"
	toyotaMark = "Toyota"

	speedFast = 50
	speedSlow = 10
	noSpeed   = 0

	carPrice       = 18000.0
	dealerDiscount = 1000.0

	invalidCar = "Car State is Invalid"
)

type testCar struct {
	Validity
	Mark     string
	Speed    int
	Price    float64
	NeedFuel bool
	Parked   bool
}

func newTestCar() *testCar {
	return &testCar{Price: carPrice}
}

func (c *testCar) LogLine() string {
	return fmt.Sprintf("car mark=%s speed=%d fuel=%t parked=%t", c.Mark, c.Speed, c.NeedFuel, c.Parked)
}

func setMark(mark string) func(*testCar) error {
	return func(c *testCar) error {
		c.Mark = mark
		return nil
	}
}

func driveFast(c *testCar) error {
	c.Speed = speedFast
	return nil
}

func driveSlow(c *testCar) error {
	c.Speed = speedSlow
	return nil
}

func park(c *testCar) error {
	c.Parked = true
	return nil
}

func isHonda(c *testCar) bool  { return c.Mark == hondaMark }
func isToyota(c *testCar) bool { return c.Mark == toyotaMark }

type testDealer struct {
	Name       string
	Reputation string
}

func newTestDealer() (*testDealer, error) {
	return &testDealer{}, nil
}

func (d *testDealer) giveDiscount(c *testCar) {
	c.Price -= dealerDiscount
}

type testEngine struct {
	Fuel       string
	HorsePower int
}

type testPrice struct {
	Initial float64
}

type testCustomer struct {
	Balance float64
}

// logCollector is a Hook that keeps every line it sees.
type logCollector struct {
	lines []string
}

func (l *logCollector) PostProcess(o Observable) error {
	l.lines = append(l.lines, o.LogLine())
	return nil
}
