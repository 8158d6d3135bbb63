package cmd

import (
	"context"
	"database/sql"
	"strings"

	"github.com/spf13/viper"
	"github.com/tsingjyujing/vireview/config"
	"github.com/tsingjyujing/vireview/controller"
	"github.com/tsingjyujing/vireview/models"
	"github.com/tsingjyujing/vireview/text"
	"github.com/tsingjyujing/vireview/utils"
)

var logger = utils.Logger

// readConfig finds the configuration file the way every command does: an
// explicit path wins, then /etc/vireview, $HOME/.vireview and ./config.
// VIREVIEW_SERVER_ADDRESS, VIREVIEW_SERVER_DATABASE and VIREVIEW_SERVER_TOKENS
// override the file.
func readConfig(configFile string) *config.Envelope {
	viperInstance := viper.New()
	if configFile != "" {
		viperInstance.SetConfigFile(configFile)
	} else {
		viperInstance.SetConfigName("config")
		viperInstance.SetConfigType("yaml")
		viperInstance.AddConfigPath("/etc/vireview/")
		viperInstance.AddConfigPath("$HOME/.vireview")
		viperInstance.AddConfigPath("./config")
	}
	viperInstance.SetEnvPrefix("VIREVIEW")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()
	if err := viperInstance.ReadInConfig(); err != nil {
		if configFile != "" {
			logger.WithError(err).Fatal("fatal error config file")
		}
		logger.WithError(err).Warn("No config file found, using defaults")
	} else {
		logger.Infof("Using config file: %s", viperInstance.ConfigFileUsed())
	}
	envelope, err := config.LoadConfigFromFile(viperInstance.ConfigFileUsed())
	if err != nil {
		logger.WithError(err).Fatal("Failed to parse configuration")
	}
	if address := viperInstance.GetString("server.address"); address != "" {
		envelope.Server.Address = address
	}
	if database := viperInstance.GetString("server.database"); database != "" {
		envelope.Server.Database = database
	}
	if tokens := viperInstance.GetStringSlice("server.tokens"); len(tokens) > 0 {
		envelope.Server.Tokens = tokens
	}
	return envelope
}

func buildPipeline(envelope *config.Envelope) (*text.Pipeline, error) {
	lexicon, err := text.LoadLexicon(envelope.Lexicon)
	if err != nil {
		return nil, err
	}
	if unreachable := lexicon.MultiRuneEmoji(); len(unreachable) > 0 {
		logger.WithField("count", len(unreachable)).Warn("Emoji entries longer than one character will never match")
	}

	var segmenter text.WordSegmenter
	var tagger text.POSTagger
	switch envelope.Tagger.Type {
	case config.TaggerRemote:
		remote := text.NewRemoteTagger(envelope.Tagger.Endpoint, envelope.Tagger.Timeout)
		segmenter, tagger = remote, remote
		logger.Infof("Using remote tagger at %s", envelope.Tagger.Endpoint)
	default:
		gseSegmenter, err := text.NewGSESegmenter(envelope.Tagger.Dictionary)
		if err != nil {
			return nil, err
		}
		segmenter, tagger = gseSegmenter, gseSegmenter
	}

	pipeline := text.NewPipeline(lexicon, text.NewProseSentenceSplitter(), segmenter, tagger)
	if len(envelope.Pipeline.NegationMarkers) > 0 {
		pipeline.Negations = text.NewNegationMarkers(envelope.Pipeline.NegationMarkers...)
	}
	pipeline.Workers = envelope.Pipeline.Workers
	pipeline.Detector = text.NewLanguageDetector()
	pipeline.TranslateEnglish = envelope.Pipeline.TranslateEnglish
	return pipeline, nil
}

func loadClassifier(envelope *config.Envelope) (models.Classifier, error) {
	if envelope.Classifier == nil {
		logger.Info("No classifier configured, using the bundled linear model")
		return models.LoadLinearClassifier("")
	}
	classifier, err := models.LoadClassifier(envelope.Classifier.Type, envelope.Classifier.Config)
	if err != nil {
		return nil, err
	}
	logger.Infof("Loaded classifier %s successfully", envelope.Classifier.ID)
	return classifier, nil
}

// newController opens the database and loads every model the configuration
// names. Failures are fatal.
func newController(ctx context.Context, envelope *config.Envelope) *controller.Controller {
	pipeline, err := buildPipeline(envelope)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build normalization pipeline")
	}
	classifier, err := loadClassifier(envelope)
	if err != nil {
		logger.WithError(err).WithField("config", envelope.Classifier).Fatal("Failed to load classifier")
	}

	var summarizationModel models.SummarizationModel
	if envelope.Summarization != nil {
		summarizationModel, err = models.NewSummarizationModel(envelope.Summarization.Type, envelope.Summarization.Config)
		if err != nil {
			logger.WithError(err).WithField("config", envelope.Summarization).Fatalf("Failed to load summarization model: %s", envelope.Summarization.ID)
		}
		logger.Infof("Loaded summarization model %s successfully", envelope.Summarization.ID)
	} else {
		logger.Info("No summarization model configured")
	}

	db := openDatabase(ctx, envelope.Server.Database)
	c, err := controller.NewController(db, pipeline, classifier, summarizationModel)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create controller")
	}
	return c
}

func openDatabase(ctx context.Context, path string) *sql.DB {
	db, err := utils.OpenDatabase(ctx, path, controller.GetDDL())
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}
	return db
}
