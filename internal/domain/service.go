package domain

// Renderer computes the Julia and Mandelbrot images of a job.
type Renderer interface {
	Run(job Job) (*RunReport, error)
}

// Kernel maps a plane point to its escape step.
type Kernel func(point complex128, params *AlgorithmParams) int
