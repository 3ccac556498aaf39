package domain

// ParamsReader интерфейс для чтения параметров алгоритма
type ParamsReader interface {
	ReadParams(filename string) (*AlgorithmParams, error)
}

// ImageWriter интерфейс для записи изображений
type ImageWriter interface {
	WriteImage(filename string, img *ImageBuffer) error
}

// HistogramWriter интерфейс для записи гистограмм
type HistogramWriter interface {
	WriteHistogram(filename string, hist *Histogram) error
}

// ConfigReader интерфейс для чтения конфигурации
type ConfigReader interface {
	ReadConfig(path string) (*Config, error)
}
