package runner

import "fmt"

// KernelName is the entry point of the generated elementwise kernel
const KernelName = "elwiseScaled"

// CUDA caps an @inner loop at 1024 threads
const cudaInnerLimit = 1024

// ElementwiseKernelSource generates the OKL kernel computing
// R[k] += scale[k] * M * U[k] for K element blocks of NP values each.
// M is row-major; one @outer iteration per element, one @inner thread per row.
func ElementwiseKernelSource(np, k int) string {
	return fmt.Sprintf(`
#define NP %d
#define K %d

@kernel void %s(
	const double* M,
	const double* scale,
	const double* U,
	double* R
) {
	for (int elem = 0; elem < K; ++elem; @outer) {
		for (int i = 0; i < NP; ++i; @inner) {
			const double* u = U + elem*NP;
			double acc = 0.0;
			for (int j = 0; j < NP; ++j) {
				acc += M[i*NP + j] * u[j];
			}
			R[elem*NP + i] += scale[elem] * acc;
		}
	}
}
`, np, k, KernelName)
}
