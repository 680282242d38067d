// Copyright 2026 Caselode Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Seeder populates a corpus with a small synthetic set of judgments and
// statute sections for local development. Point it at a running embedding
// service and a database path, then run queries against the result.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/caselode/caselode"
	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/ingestion"
)

var judgments = []string{
	`In Crl.A.No. 417/2018 before the Supreme Court of India, decided on 12 February 2019.

FACTS
The appellant was convicted by the Sessions Court for the offence punishable under Section 302 IPC for the murder of his business partner. The prosecution case rested on the testimony of two eyewitnesses who saw the appellant leaving the premises shortly after the incident, and on the recovery of the weapon at his instance under Section 27 of the Evidence Act. The High Court of Delhi affirmed the conviction in appeal.

ANALYSIS
The ocular evidence was consistent and the witnesses had no enmity with the appellant. The recovery of the weapon was duly proved through the investigating officer. The statement recorded under Section 161 CrPC corroborated the sequence of events narrated by the eyewitnesses. The defence plea of alibi was not substantiated by any credible material.

CONCLUSION
The appeal is dismissed. The conviction under Section 302 IPC and the sentence of imprisonment for life are affirmed.`,

	`In Criminal Appeal No. 88/2020 before the High Court of Bombay, decided on 3 August 2021.

FACTS
The appellant was convicted under Section 304 IPC for culpable homicide not amounting to murder. The incident arose from a sudden quarrel over a property boundary. The deceased suffered a single blow and died two days later in hospital.

ANALYSIS
There was no premeditation and the appellant did not take undue advantage of the situation. The injury was inflicted in the heat of passion upon a sudden quarrel, attracting Exception 4 to Section 300 IPC. The medical evidence showed a single injury inconsistent with an intention to cause death.

CONCLUSION
The conviction is altered to Section 304 Part II IPC and the sentence is reduced to the period already undergone. The appeal is partly allowed.`,

	`In W.P.(C) No. 2301/2022 before the High Court of Delhi, decided on 19 September 2022.

FACTS
The petitioner sought bail pending trial in a case registered under Section 420 IPC. The petitioner had been in custody for eighteen months and the trial had not commenced. Charges were yet to be framed owing to the pendency of supplementary investigation.

ANALYSIS
Prolonged incarceration without trial offends Article 21 of the Constitution. The petitioner has roots in the community and no prior antecedents. The apprehension of tampering with evidence can be addressed by conditions. The statement of the complainant recorded under Section 164 CrPC is already on record.

CONCLUSION
The petition is allowed. The petitioner shall be released on bail on furnishing a personal bond with two sureties, subject to surrender of passport.`,
}

var statutes = []*core.StatuteSection{
	{
		Act:      "IPC",
		Number:   "302",
		Title:    "Punishment for murder",
		Contents: "Whoever commits murder shall be punished with death, or imprisonment for life, and shall also be liable to fine.",
	},
	{
		Act:      "IPC",
		Number:   "304",
		Title:    "Punishment for culpable homicide not amounting to murder",
		Contents: "Whoever commits culpable homicide not amounting to murder shall be punished with imprisonment for life, or imprisonment of either description for a term which may extend to ten years, and shall also be liable to fine.",
	},
	{
		Act:      "IPC",
		Number:   "420",
		Title:    "Cheating and dishonestly inducing delivery of property",
		Contents: "Whoever cheats and thereby dishonestly induces the person deceived to deliver any property to any person shall be punished with imprisonment of either description for a term which may extend to seven years, and shall also be liable to fine.",
	},
	{
		Act:      "Evidence Act",
		Number:   "27",
		Title:    "How much of information received from accused may be proved",
		Contents: "When any fact is deposed to as discovered in consequence of information received from a person accused of any offence, in the custody of a police officer, so much of such information as relates distinctly to the fact thereby discovered may be proved.",
	},
	{
		Act:      "CrPC",
		Number:   "161",
		Title:    "Examination of witnesses by police",
		Contents: "Any police officer making an investigation may examine orally any person supposed to be acquainted with the facts and circumstances of the case.",
	},
}

var dbPath = flag.String("db", "./corpus_db", "path to the corpus database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	corpus, err := caselode.OpenCorpus(*dbPath)
	if err != nil {
		panic(err)
	}
	defer corpus.Close()

	pipeline, err := corpus.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()

	for _, text := range judgments {
		judgmentID, chunks, err := pipeline.IngestJudgment(ctx, &ingestion.Judgment{Text: text})
		if err != nil {
			panic(err)
		}
		slog.Info("ingested judgment", "id", judgmentID, "chunks", chunks)
	}

	count, err := pipeline.LoadStatutes(ctx, statutes...)
	if err != nil {
		panic(err)
	}
	slog.Info("loaded statute sections", "sections", count)
}
