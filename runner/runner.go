package runner

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/notargets/DGElwise/operator"
	"github.com/notargets/DGElwise/partitions"
	"github.com/notargets/gocca"
	"gonum.org/v1/gonum/mat"
)

// DefaultMode is the OCCA device used when Config.Mode is empty
const DefaultMode = `{"mode": "Serial"}`

// Config holds configuration for creating a Device
type Config struct {
	// Mode is an OCCA device property string, e.g. `{"mode": "CUDA", "device_id": 0}`
	Mode   string
	Logger *slog.Logger
}

type kernelShape struct {
	np, k int
}

// Device applies elementwise operators on an OCCA device. It accepts the same
// work as operator.Batched, a Uniform partition with a BufferTarget, and
// produces the same result.
type Device struct {
	Device  *gocca.OCCADevice
	Kernels map[kernelShape]*gocca.OCCAKernel

	ownsDevice bool
	logger     *slog.Logger
}

var _ operator.Applicator = (*Device)(nil)

// NewDevice creates an OCCA device from cfg and wraps it
func NewDevice(cfg Config) (*Device, error) {
	mode := cfg.Mode
	if mode == "" {
		mode = DefaultMode
	}
	device, err := gocca.NewDevice(mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create device %s: %w", mode, err)
	}
	d := Wrap(device, cfg.Logger)
	d.ownsDevice = true
	return d, nil
}

// Wrap uses an existing OCCA device; Free will not release it
func Wrap(device *gocca.OCCADevice, logger *slog.Logger) *Device {
	if device == nil {
		panic("device cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("elementwise device ready", "mode", device.Mode())
	return &Device{
		Device:  device,
		Kernels: make(map[kernelShape]*gocca.OCCAKernel),
		logger:  logger,
	}
}

func (d *Device) Mode() string {
	return d.Device.Mode()
}

// Free releases compiled kernels, and the device when NewDevice created it
func (d *Device) Free() {
	for shape, kernel := range d.Kernels {
		kernel.Free()
		delete(d.Kernels, shape)
	}
	if d.ownsDevice {
		d.Device.Free()
		d.ownsDevice = false
	}
}

func (d *Device) Apply(p partitions.Partition, m mat.Matrix, t operator.Target) error {
	u, bt, err := operator.CheckBatched(p, m, t)
	if err != nil || u.Size() == 0 {
		return err
	}
	ones := make([]float64, u.Size())
	for i := range ones {
		ones[i] = 1
	}
	return d.run(u, ones, m, bt)
}

func (d *Device) ApplyScaled(p partitions.Partition, scale []float64, m mat.Matrix, t operator.Target) error {
	u, bt, err := operator.CheckBatched(p, m, t)
	if err != nil || u.Size() == 0 {
		return err
	}
	if len(scale) != u.Size() {
		return fmt.Errorf("%w: %d scale factors for %d elements",
			operator.ErrOutOfRange, len(scale), u.Size())
	}
	return d.run(u, scale, m, bt)
}

// run copies the covered operand and result regions to the device, runs one
// kernel over all elements and copies the result region back. Device buffers
// are freed on every return path.
func (d *Device) run(u *partitions.Uniform, scale []float64, m mat.Matrix, bt operator.BufferTarget) error {
	var (
		np      = u.ElementSize()
		k       = u.Size()
		operand = bt.Operand()[u.Start():u.End()]
		result  = bt.Result()[u.Start():u.End()]
		// contiguous row-major copy of the local matrix
		local = mat.DenseCopyOf(m).RawMatrix().Data
	)
	if d.Device.Mode() == "CUDA" && np > cudaInnerLimit {
		return fmt.Errorf("%w: element size %d exceeds the CUDA @inner limit of %d",
			operator.ErrUnsupported, np, cudaInnerLimit)
	}

	kernel, err := d.kernel(kernelShape{np: np, k: k})
	if err != nil {
		return err
	}

	mMem := d.Device.Malloc(bytesOf(local), unsafe.Pointer(&local[0]), nil)
	defer mMem.Free()
	sMem := d.Device.Malloc(bytesOf(scale), unsafe.Pointer(&scale[0]), nil)
	defer sMem.Free()
	uMem := d.Device.Malloc(bytesOf(operand), unsafe.Pointer(&operand[0]), nil)
	defer uMem.Free()
	rMem := d.Device.Malloc(bytesOf(result), unsafe.Pointer(&result[0]), nil)
	defer rMem.Free()

	if err = kernel.RunWithArgs(mMem, sMem, uMem, rMem); err != nil {
		return fmt.Errorf("kernel execution failed: %w", err)
	}
	d.Device.Finish()
	rMem.CopyTo(unsafe.Pointer(&result[0]), bytesOf(result))
	return nil
}

// kernel returns the compiled kernel for a shape, building it on first use
func (d *Device) kernel(shape kernelShape) (*gocca.OCCAKernel, error) {
	if kernel, ok := d.Kernels[shape]; ok {
		return kernel, nil
	}

	var (
		kernel *gocca.OCCAKernel
		err    error
		source = ElementwiseKernelSource(shape.np, shape.k)
	)
	if d.Device.Mode() == "OpenMP" {
		// OpenMP builds do not get -O3 by default
		props := gocca.JsonParse(`{"compiler_flags": "-O3"}`)
		defer props.Free()
		kernel, err = d.Device.BuildKernelFromString(source, KernelName, props)
	} else {
		kernel, err = d.Device.BuildKernelFromString(source, KernelName, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build kernel %s for Np=%d, K=%d: %w",
			KernelName, shape.np, shape.k, err)
	}
	if kernel == nil {
		return nil, fmt.Errorf("kernel build returned nil for %s", KernelName)
	}

	d.logger.Debug("built elementwise kernel", "mode", d.Device.Mode(), "np", shape.np, "k", shape.k)
	d.Kernels[shape] = kernel
	return kernel, nil
}

func bytesOf(s []float64) int64 {
	return int64(len(s) * 8)
}
